package payload

import (
	"encoding/json"
	"io"
	"strings"
)

// Normalize turns a raw response body into a field mapping.
//
// The body is tried as strict JSON first. A JSON object becomes the mapping
// directly; a JSON-encoded string is unwrapped and re-normalized (some
// firmware builds double-encode the key=value text). Anything else falls
// back to line-oriented key=value parsing. Returns nil when nothing could
// be extracted.
func Normalize(body string) *Fields {
	s := strings.TrimSpace(body)
	if s == "" {
		return nil
	}

	if v, ok := parseJSON(s); ok {
		switch t := v.(type) {
		case *Fields:
			return t
		case string:
			return Normalize(t)
		}
		// Scalar or array JSON carries no fields; fall through in case the
		// body also parses as key=value text (it will not, but the fallback
		// keeps the two paths symmetric).
	}

	if f := ParseKeyValue(s); f.Len() > 0 {
		return f
	}
	return nil
}

// parseJSON decodes s as a single strict JSON value, preserving object key
// order at every nesting level. Trailing non-whitespace input fails the parse.
func parseJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		f := NewFields()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			f.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return f, nil
	case '[':
		var arr []any
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return tok, nil
}

// ParseKeyValue parses line-oriented key=value text.
//
// Blank lines and comment lines (#, ;, //) are skipped. Each remaining line
// splits at its first "=" or ":", preferring "=" when it occurs no later
// than ":". Keys and values are trimmed and one layer of matching quotes is
// stripped from the value. Lines without a separator are dropped.
func ParseKeyValue(src string) *Fields {
	f := NewFields()
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}

		eq := strings.Index(line, "=")
		colon := strings.Index(line, ":")
		sep := -1
		switch {
		case eq >= 0 && (colon < 0 || eq <= colon):
			sep = eq
		case colon >= 0:
			sep = colon
		}
		if sep < 0 {
			continue
		}

		key := strings.TrimSpace(line[:sep])
		if key == "" {
			continue
		}
		f.Set(key, unquote(strings.TrimSpace(line[sep+1:])))
	}
	return f
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
