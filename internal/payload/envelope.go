package payload

// Unwrap resolves one level of response envelope.
//
// Some firmware builds wrap the section payload in {"data": ...}; the device
// daemon additionally uses "config" or "content". The envelope keys are
// tried in the order given ("data" always first). A string inner value is
// re-run through Normalize. The second return value is false when an
// envelope key was present but no object could be formed from its value,
// meaning "no data", which is distinct from a mapping that happens to be empty.
// Mappings without an envelope key pass through untouched.
func Unwrap(f *Fields, altKeys ...string) (*Fields, bool) {
	if f == nil {
		return nil, false
	}
	for _, key := range append([]string{"data"}, altKeys...) {
		v, ok := f.Get(key)
		if !ok {
			continue
		}
		switch inner := v.(type) {
		case *Fields:
			return inner, true
		case string:
			if nf := Normalize(inner); nf != nil {
				return nf, true
			}
			return nil, false
		default:
			return nil, false
		}
	}
	return f, true
}
