package section

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gatewave/gatecon/internal/payload"
)

// Modem parameter sets accepted by the firmware.
var (
	ModemModes = []string{"FSK2", "FSK4"}
	ModemRates = []string{"500", "200", "100", "50", "20"}
	ModemLDPCs = []string{"768/256", "512/256"}
)

// ModemConfig is the radio-modem section field set.
type ModemConfig struct {
	Mode string // FSK2 or FSK4
	Rate string // symbol rate
	LDPC string // code rate
}

func extractModem(f *payload.Fields) ModemConfig {
	return ModemConfig{
		Mode: strings.ToUpper(f.String("mode")),
		Rate: f.String("rate"),
		LDPC: f.String("ldpc"),
	}
}

// Section implements Model.
func (c ModemConfig) Section() ID { return Modem }

// HasData implements Model.
func (c ModemConfig) HasData() bool {
	return strings.TrimSpace(c.Mode) != "" ||
		strings.TrimSpace(c.Rate) != "" ||
		strings.TrimSpace(c.LDPC) != ""
}

// DiffersFrom implements Model.
func (c ModemConfig) DiffersFrom(baseline Model) bool {
	b, ok := baseline.(ModemConfig)
	if !ok {
		return true
	}
	return c.normalizedForDiff() != b.normalizedForDiff()
}

func (c ModemConfig) normalizedForDiff() ModemConfig {
	return ModemConfig{
		Mode: strings.ToUpper(strings.TrimSpace(c.Mode)),
		Rate: strings.TrimSpace(c.Rate),
		LDPC: strings.TrimSpace(c.LDPC),
	}
}

// Validate implements Model.
func (c ModemConfig) Validate() error {
	if !contains(ModemModes, strings.ToUpper(strings.TrimSpace(c.Mode))) {
		return errors.New("mode must be FSK2 or FSK4")
	}
	if !validModemRate(c.Rate) {
		return errors.New("rate must be one of 500, 200, 100, 50, 20")
	}
	if !contains(ModemLDPCs, strings.TrimSpace(c.LDPC)) {
		return errors.New("LDPC must be 768/256 or 512/256")
	}
	return nil
}

func validModemRate(rate string) bool {
	return contains(ModemRates, strings.TrimSpace(rate))
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// FormValues implements Model.
func (c ModemConfig) FormValues() url.Values {
	v := url.Values{}
	v.Set("mode", c.Mode)
	v.Set("rate", c.Rate)
	v.Set("ldpc", c.LDPC)
	return v
}

// FieldMap implements Model.
func (c ModemConfig) FieldMap() map[string]string {
	return map[string]string{
		"mode": c.Mode,
		"rate": c.Rate,
		"ldpc": c.LDPC,
	}
}
