package section

import (
	"net/url"

	"github.com/gatewave/gatecon/internal/payload"
)

// EthernetConfig is the wired section field set.
type EthernetConfig struct {
	Addressing
}

func extractEthernet(f *payload.Fields) EthernetConfig {
	return EthernetConfig{Addressing: extractAddressing(f)}
}

// Section implements Model.
func (c EthernetConfig) Section() ID { return Ethernet }

// HasData implements Model.
func (c EthernetConfig) HasData() bool {
	return c.Addressing.trimmed().anySet()
}

// DiffersFrom implements Model.
func (c EthernetConfig) DiffersFrom(baseline Model) bool {
	b, ok := baseline.(EthernetConfig)
	if !ok {
		return true
	}
	return c.Addressing.normalized() != b.Addressing.normalized()
}

// Validate implements Model.
func (c EthernetConfig) Validate() error {
	return c.Addressing.validate()
}

// FormValues implements Model.
func (c EthernetConfig) FormValues() url.Values {
	v := url.Values{}
	c.Addressing.formInto(v)
	return v
}

// FieldMap implements Model.
func (c EthernetConfig) FieldMap() map[string]string {
	m := make(map[string]string, 6)
	c.Addressing.fieldsInto(m)
	return m
}
