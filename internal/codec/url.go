package codec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"prismslink/internal/domain"
)

// Methods served by GET URLs rather than the request/response channel.
const (
	MethodGenerateImage = "generateImage"
	MethodGetDownload   = "getDownload"
	MethodDoUpload      = "doUpload"
)

// SourceURL builds a GET URL for method against base carrying params as the
// data field, encrypted and padded when key is set.
func SourceURL(base, method string, stamp Stamp, params domain.Params, key string, c domain.Cipher) (string, error) {
	data := make(map[string]any, len(params)+1)
	for k, v := range params {
		data[k] = v
	}
	if key != "" {
		data[PaddingField] = PaddingValue
	}
	payload, err := scalar(data)
	if err != nil {
		return "", fmt.Errorf("encode %s data: %w", method, err)
	}
	if key != "" {
		if payload, err = c.Encrypt(payload, key); err != nil {
			return "", fmt.Errorf("encrypt %s data: %w", method, err)
		}
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?sessionID=")
	b.WriteString(url.QueryEscape(stamp.SessionID))
	b.WriteString("&app=")
	b.WriteString(url.QueryEscape(stamp.App))
	b.WriteString("&client=")
	b.WriteString(url.QueryEscape(stamp.Client))
	if stamp.User != "" {
		b.WriteString("&user=")
		b.WriteString(url.QueryEscape(stamp.User))
	}
	b.WriteString("&encrypted=")
	b.WriteString(strconv.FormatBool(key != ""))
	b.WriteString("&method=")
	b.WriteString(url.QueryEscape(method))
	b.WriteString("&data=")
	b.WriteString(url.QueryEscape(payload))
	return b.String(), nil
}
