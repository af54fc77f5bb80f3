package profile

import "strings"

// AutofillMode selects how remembered values reach the form.
type AutofillMode string

const (
	// AutofillHints offers remembered values as suggestions only.
	AutofillHints AutofillMode = "hints"
	// AutofillFill pre-populates empty fields with remembered values.
	AutofillFill AutofillMode = "fill"
)

// FieldSet is a canonical field name → value record.
type FieldSet map[string]string

// Registry is the persisted profile file.
type Registry struct {
	// Version is the schema version, currently 1.
	Version int `yaml:"version"`

	// Autofill is the operator's autofill preference.
	Autofill AutofillMode `yaml:"autofill"`

	// Sections maps a section name to its last successfully applied fields.
	Sections map[string]FieldSet `yaml:"sections,omitempty"`
}

// NewRegistry creates an empty registry with defaults.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Autofill: AutofillHints,
		Sections: make(map[string]FieldSet),
	}
}

// Remember records the field set for a section, replacing any prior record.
func (r *Registry) Remember(section string, fields map[string]string) {
	if r.Sections == nil {
		r.Sections = make(map[string]FieldSet)
	}
	fs := make(FieldSet, len(fields))
	for k, v := range fields {
		fs[k] = v
	}
	r.Sections[section] = fs
}

// Fields returns the remembered field set for a section, or nil.
func (r *Registry) Fields(section string) FieldSet {
	return r.Sections[section]
}

// ToggleAutofill flips between hints and fill and returns the new mode.
func (r *Registry) ToggleAutofill() AutofillMode {
	if r.Autofill == AutofillFill {
		r.Autofill = AutofillHints
	} else {
		r.Autofill = AutofillFill
	}
	return r.Autofill
}

// Suggestions builds the suggestion list for one field: the remembered value
// first, then the given defaults, deduplicated with blanks dropped.
func (r *Registry) Suggestions(section, field string, defaults ...string) []string {
	candidates := make([]string, 0, len(defaults)+1)
	if fs := r.Sections[section]; fs != nil {
		candidates = append(candidates, fs[field])
	}
	candidates = append(candidates, defaults...)

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
