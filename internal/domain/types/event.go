package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Event is one record of a server response batch.
//
// Events addressed to a plugin carry a "plugin" field; events without one are
// control events for the session itself.
type Event map[string]any

// Method returns the event's "method" field.
func (e Event) Method() string { return e.String("method") }

// Plugin returns the event's "plugin" field, or "" for control events.
func (e Event) Plugin() string { return e.String("plugin") }

// String returns the field as a string. Numbers and booleans are formatted;
// absent and null fields yield "".
func (e Event) String(key string) string {
	v, ok := e[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Bool reports whether the field holds true.
func (e Event) Bool(key string) bool {
	switch t := e[key].(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

// Decode re-marshals the event into out.
func (e Event) Decode(out any) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// Clone returns a shallow copy.
func (e Event) Clone() Event {
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Params is an outbound request before it is stamped and serialized.
type Params map[string]any

// WireRequest is the flattened form handed to a transport.
type WireRequest map[string]string
