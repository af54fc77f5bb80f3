package payload

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fields is an insertion-ordered key/value mapping. Order matters: when two
// raw keys alias to the same canonical name (dns and dns1 both target the
// primary DNS slot), the first occurrence wins the slot and the second is
// redirected, so iteration must follow the order keys appeared on the wire.
type Fields struct {
	keys []string
	vals map[string]any
}

// NewFields returns an empty mapping.
func NewFields() *Fields {
	return &Fields{vals: make(map[string]any)}
}

// Set stores a value under key, preserving first-insertion order.
func (f *Fields) Set(key string, v any) {
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = v
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.vals[key]
	return ok
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (f *Fields) Range(fn func(key string, v any) bool) {
	for _, k := range f.keys {
		if !fn(k, f.vals[k]) {
			return
		}
	}
}

// String returns the scalar value under key coerced to a string.
// Missing keys and container values yield "".
func (f *Fields) String(key string) string {
	v, ok := f.vals[key]
	if !ok {
		return ""
	}
	s, _ := CoerceString(v)
	return s
}

// CoerceString converts a scalar value to its trimmed string form.
// Containers (nested objects, arrays) are not scalars and report false.
func CoerceString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
