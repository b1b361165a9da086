package codec

import (
	"encoding/json"
	"fmt"
	"strconv"

	"prismslink/internal/domain"
)

// PaddingField and PaddingValue are added to every encrypted payload so the
// ciphertext is long enough for the server to accept it as valid.
const (
	PaddingField = "serverPadding"
	PaddingValue = "padding"
)

// Stamp holds the session fields added to every request.
type Stamp struct {
	SessionID string
	App       string
	Client    string
	User      string
}

// EncodeRequest returns the wire form of params. params is not modified.
//
// With a non-empty key the request is marked encrypted and its data payload,
// padded with PaddingField, is encrypted with c. Without one every value is
// sent in the clear.
func EncodeRequest(stamp Stamp, params domain.Params, key string, c domain.Cipher) (domain.WireRequest, error) {
	fields := make(domain.Params, len(params)+5)
	for k, v := range params {
		fields[k] = v
	}
	stampFields(fields, stamp, key != "")
	if key != "" {
		fields["data"] = paddedData(fields["data"])
	}

	wire, err := flatten(fields)
	if err != nil {
		return nil, err
	}
	if key != "" {
		enc, err := c.Encrypt(wire["data"], key)
		if err != nil {
			return nil, fmt.Errorf("encrypt request: %w", err)
		}
		wire["data"] = enc
	}
	return wire, nil
}

func stampFields(fields domain.Params, stamp Stamp, encrypted bool) {
	if stamp.SessionID != "" {
		fields["sessionID"] = stamp.SessionID
	} else {
		delete(fields, "sessionID")
	}
	fields["app"] = stamp.App
	fields["client"] = stamp.Client
	if stamp.User != "" {
		fields["user"] = stamp.User
	} else {
		delete(fields, "user")
	}
	fields["encrypted"] = encrypted
}

// paddedData copies a map payload (anything else is replaced by an empty
// map) and adds the padding field.
func paddedData(v any) map[string]any {
	out := map[string]any{}
	switch d := v.(type) {
	case map[string]any:
		for k, v := range d {
			out[k] = v
		}
	case domain.Params:
		for k, v := range d {
			out[k] = v
		}
	case domain.Event:
		for k, v := range d {
			out[k] = v
		}
	}
	out[PaddingField] = PaddingValue
	return out
}

// flatten renders every non-nil top-level value as a string; structured
// values become JSON.
func flatten(fields domain.Params) (domain.WireRequest, error) {
	wire := make(domain.WireRequest, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		s, err := scalar(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		wire[k] = s
	}
	return wire, nil
}

func scalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
