package section

import (
	"net/url"
	"strings"

	"github.com/gatewave/gatecon/internal/payload"
)

// ID identifies a configuration section. The value doubles as the CGI path
// segment (<base>/<id>/info, <base>/<id>/apply).
type ID string

const (
	Wifi     ID = "wifi"
	Ethernet ID = "ethernet"
	Modem    ID = "modem"
	Radiod   ID = "radiod"
)

// All returns the sections in display order.
func All() []ID {
	return []ID{Wifi, Ethernet, Modem, Radiod}
}

// Valid reports whether id names a known section.
func (id ID) Valid() bool {
	switch id {
	case Wifi, Ethernet, Modem, Radiod:
		return true
	}
	return false
}

// Title returns the human-readable section name.
func (id ID) Title() string {
	switch id {
	case Wifi:
		return "Wireless"
	case Ethernet:
		return "Wired"
	case Modem:
		return "Modem"
	case Radiod:
		return "Device daemon"
	}
	return string(id)
}

// Persistable reports whether the section's last submitted field set is
// remembered in the local profile registry.
func (id ID) Persistable() bool {
	return id == Wifi || id == Ethernet
}

// Model is a section configuration field set.
//
// Models are value types: assigning one copies it, which is how the baseline
// snapshot stays isolated from the fields being edited.
type Model interface {
	// Section returns the section this model belongs to.
	Section() ID

	// HasData reports whether at least one recognized field is non-empty.
	// A model without data never becomes a baseline.
	HasData() bool

	// DiffersFrom compares against a baseline under the section's diff
	// normalization rules. A baseline of a different section counts as
	// different.
	DiffersFrom(baseline Model) bool

	// Validate applies the section's rules in order and returns the first
	// failure as a single human-readable error, or nil.
	Validate() error

	// FormValues encodes the model with the outbound field names for a
	// form-encoded apply request.
	FormValues() url.Values

	// FieldMap returns the canonical field name → value mapping.
	FieldMap() map[string]string
}

// Parse runs the full inbound pipeline for a section: normalize the raw
// body, unwrap the response envelope, canonicalize keys, and extract the
// typed model. A body that yields no data produces the section's empty
// model (HasData false), never an error. A blank form is the fallback.
func Parse(id ID, body string) Model {
	if id == Radiod {
		return ExtractRadiod(body)
	}

	f := payload.Normalize(body)
	inner, ok := payload.Unwrap(f)
	if !ok {
		return Default(id)
	}
	c := payload.Canonicalize(inner)

	switch id {
	case Wifi:
		return extractWifi(c)
	case Ethernet:
		return extractEthernet(c)
	case Modem:
		return extractModem(c)
	}
	return Default(id)
}

// Default returns the empty model for a section.
func Default(id ID) Model {
	switch id {
	case Wifi:
		return WifiConfig{}
	case Ethernet:
		return EthernetConfig{}
	case Modem:
		return ModemConfig{}
	case Radiod:
		return RadiodConfig{}
	}
	return nil
}

// FromFields builds a model from a canonical field map, as produced by
// FieldMap or collected from a form or command-line flags.
func FromFields(id ID, fields map[string]string) Model {
	get := func(k string) string { return strings.TrimSpace(fields[k]) }

	switch id {
	case Wifi:
		return WifiConfig{
			Mode:       get("mode"),
			SSID:       get("ssid"),
			Password:   fields["password"],
			Addressing: addressingFromMap(fields),
		}
	case Ethernet:
		return EthernetConfig{Addressing: addressingFromMap(fields)}
	case Modem:
		return ModemConfig{
			Mode: strings.ToUpper(get("mode")),
			Rate: get("rate"),
			LDPC: get("ldpc"),
		}
	case Radiod:
		return RadiodConfig{Bus: busFromMap(fields)}
	}
	return nil
}

// ApplyDefaults fills render-time defaults into fields the appliance left
// unset. Extraction itself never defaults: the baseline must reflect what
// the defaulted form actually shows, so defaults are applied to both.
func ApplyDefaults(m Model) Model {
	switch t := m.(type) {
	case WifiConfig:
		if t.Mode != "ap" {
			t.Mode = "client"
		}
		t.Addressing = t.Addressing.withDefaults()
		return t
	case EthernetConfig:
		t.Addressing = t.Addressing.withDefaults()
		return t
	case ModemConfig:
		if t.Mode != "FSK4" {
			t.Mode = "FSK2"
		}
		if !validModemRate(t.Rate) {
			t.Rate = "500"
		}
		if t.LDPC != "512/256" {
			t.LDPC = "768/256"
		}
		return t
	}
	return m
}
