package instrument

import (
	"encoding/json"
	"net/http"
	"strings"
)

// MaskedValue replaces the value of a sensitive field.
const MaskedValue = "***"

// Masker hides values whose key is in a case-insensitive deny list.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker builds a Masker from field names. Blank names are ignored.
func NewMasker(fields []string) *Masker {
	keys := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if field != "" {
			keys[field] = struct{}{}
		}
	}
	return &Masker{keys: keys}
}

// Empty reports whether nothing is masked.
func (m *Masker) Empty() bool {
	return m == nil || len(m.keys) == 0
}

// Sensitive reports whether key must be hidden.
func (m *Masker) Sensitive(key string) bool {
	if m.Empty() {
		return false
	}
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

// Data walks decoded JSON and hides sensitive keys at any depth.
func (m *Masker) Data(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if m.Sensitive(k) {
				out[k] = MaskedValue
				continue
			}
			out[k] = m.Data(child)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if m.Sensitive(k) {
				out[k] = MaskedValue
				continue
			}
			out[k] = child
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = m.Data(child)
		}
		return out
	default:
		return v
	}
}

// JSON masks a JSON object or array payload. ok is false when payload is
// not JSON.
func (m *Masker) JSON(payload []byte) (masked string, ok bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", false
	}

	out, err := json.Marshal(m.Data(decoded))
	if err != nil {
		return "", false
	}
	return string(out), true
}

// Header returns a copy of h with sensitive headers hidden.
func (m *Masker) Header(h http.Header) http.Header {
	if m.Empty() {
		return h
	}

	out := h.Clone()
	for key := range out {
		if m.Sensitive(key) {
			out.Set(key, MaskedValue)
		}
	}
	return out
}
