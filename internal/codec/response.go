package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"prismslink/internal/domain"
)

// IsPlainBatch reports whether body looks like an unencrypted event array.
func IsPlainBatch(body string) bool {
	return strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]")
}

// DecodeResponse parses a response body into events.
//
// A body that is not a bracketed array is taken to be encrypted: it fails
// with domain.ErrDecryptionUnavailable when key is empty, and is otherwise
// decrypted with c and stripped of trailing control characters left by the
// cipher's padding. An empty body carries no events.
func DecodeResponse(raw []byte, key string, c domain.Cipher) ([]domain.Event, error) {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return nil, nil
	}
	if !IsPlainBatch(body) {
		if key == "" {
			return nil, domain.ErrDecryptionUnavailable
		}
		dec, err := c.Decrypt(body, key)
		if err != nil {
			return nil, fmt.Errorf("%w: decrypt response: %v", domain.ErrProtocolViolation, err)
		}
		body = trimControl(dec)
	}
	return parseBatch(body)
}

func trimControl(s string) string {
	n := len(s)
	for n > 0 && s[n-1] < ' ' {
		n--
	}
	return s[:n]
}

func parseBatch(body string) ([]domain.Event, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var raw []domain.Event
	if err := dec.Decode(&raw); err != nil {
		return nil, domain.ProtocolErrorf("malformed response: %v", err)
	}
	events := make([]domain.Event, 0, len(raw))
	for _, ev := range raw {
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}
