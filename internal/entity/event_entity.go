package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UnknownActionLabel tags events whose endpoint matched no catalog template.
// The raw concrete endpoint must never leak into model input as a label.
const UnknownActionLabel = "UNKNOWN"

// Event is one recorded API interaction. Immutable once recorded; the
// Action label is filled in by the template matcher before the event is
// handed to the feature builder.
type Event struct {
	SessionId string   `json:"session_id"`
	UserId    string   `json:"user_id"`
	Timestamp string   `json:"ts"`
	Endpoint  string   `json:"endpoint"` // "METHOD /concrete/path"
	Params    ParamBag `json:"params"`
	Action    string   `json:"action,omitempty"` // abstract label, e.g. "GET /tickets/{ticketId}"
}

// ActionLabel returns the abstract label if the matcher assigned one,
// falling back to the raw endpoint for display purposes only.
func (e Event) ActionLabel() string {
	if e.Action != "" {
		return e.Action
	}
	return e.Endpoint
}

// KV is one named parameter as recorded on an event.
type KV struct {
	Key   string
	Value string
}

// ParamBag holds the parameters of one event. Clients send either a JSON
// array of positional values or a JSON object; both decode into an ordered
// list so that positional decomposition (para1..para3) stays deterministic.
// Malformed payloads decode to an empty bag, never an error.
type ParamBag struct {
	pairs []KV
}

// NewParamBag builds a bag from already-ordered pairs (used by fixtures
// and the dataset loader).
func NewParamBag(pairs ...KV) ParamBag {
	return ParamBag{pairs: pairs}
}

// Values returns the positional parameter values in recorded order.
func (p ParamBag) Values() []string {
	out := make([]string, 0, len(p.pairs))
	for _, kv := range p.pairs {
		out = append(out, kv.Value)
	}
	return out
}

// Pairs returns the recorded key/value pairs. Positional entries carry an
// empty key.
func (p ParamBag) Pairs() []KV {
	return p.pairs
}

func (p ParamBag) IsEmpty() bool {
	return len(p.pairs) == 0
}

// UnmarshalJSON accepts an object (key order preserved), an array, or any
// scalar/garbage (degrades to empty). A token-level walk is required
// because encoding/json maps do not preserve member order.
func (p *ParamBag) UnmarshalJSON(data []byte) error {
	p.pairs = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil // malformed params degrade to empty, by contract
	}

	switch delim, ok := tok.(json.Delim); {
	case ok && delim == '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				p.pairs = nil
				return nil
			}
			key, _ := keyTok.(string)
			valTok, err := dec.Token()
			if err != nil {
				p.pairs = nil
				return nil
			}
			p.pairs = append(p.pairs, KV{Key: key, Value: tokenToString(valTok, dec)})
		}
	case ok && delim == '[':
		for dec.More() {
			valTok, err := dec.Token()
			if err != nil {
				p.pairs = nil
				return nil
			}
			p.pairs = append(p.pairs, KV{Value: tokenToString(valTok, dec)})
		}
	}
	return nil
}

// MarshalJSON re-emits the bag as an object when keys exist, otherwise as
// an array of values.
func (p ParamBag) MarshalJSON() ([]byte, error) {
	if len(p.pairs) == 0 {
		return []byte("{}"), nil
	}
	keyed := false
	for _, kv := range p.pairs {
		if kv.Key != "" {
			keyed = true
			break
		}
	}
	var buf bytes.Buffer
	if keyed {
		buf.WriteByte('{')
		for i, kv := range p.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, _ := json.Marshal(kv.Key)
			v, _ := json.Marshal(kv.Value)
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
	} else {
		buf.WriteByte('[')
		for i, kv := range p.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			v, _ := json.Marshal(kv.Value)
			buf.Write(v)
		}
		buf.WriteByte(']')
	}
	return buf.Bytes(), nil
}

// tokenToString flattens a JSON value token to its display form. Nested
// containers are skipped wholesale; their slot renders empty.
func tokenToString(tok json.Token, dec *json.Decoder) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	case json.Delim:
		// Drain the nested container so decoding can continue.
		depth := 1
		for depth > 0 {
			t, err := dec.Token()
			if err != nil {
				return ""
			}
			if d, ok := t.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
		return ""
	}
	return ""
}
