package section

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gatewave/gatecon/internal/payload"
)

// WifiConfig is the wireless section field set.
type WifiConfig struct {
	Mode     string // "client" or "ap"
	SSID     string
	Password string
	Addressing
}

// extractWifi projects the canonical mapping into the wireless field set.
// The role is passed through verbatim; folding unrecognized spellings to
// client is a render-time default, not an extraction step.
func extractWifi(f *payload.Fields) WifiConfig {
	return WifiConfig{
		Mode:       f.String("mode"),
		SSID:       f.String("ssid"),
		Password:   f.String("password"),
		Addressing: extractAddressing(f),
	}
}

// Section implements Model.
func (c WifiConfig) Section() ID { return Wifi }

// HasData implements Model.
func (c WifiConfig) HasData() bool {
	return strings.TrimSpace(c.Mode) != "" ||
		strings.TrimSpace(c.SSID) != "" ||
		strings.TrimSpace(c.Password) != "" ||
		c.Addressing.trimmed().anySet()
}

// DiffersFrom implements Model. The credential compares as a plain string:
// the appliance never echoes it, so a freshly loaded baseline carries an
// empty password and leaving the field untouched is not a change.
func (c WifiConfig) DiffersFrom(baseline Model) bool {
	b, ok := baseline.(WifiConfig)
	if !ok {
		return true
	}
	cur, base := c.normalizedForDiff(), b.normalizedForDiff()

	passwordChanged := cur.Password != base.Password
	otherEqual := cur.Mode == base.Mode &&
		cur.SSID == base.SSID &&
		cur.Addressing == base.Addressing
	return passwordChanged || !otherEqual
}

func (c WifiConfig) normalizedForDiff() WifiConfig {
	return WifiConfig{
		Mode:       strings.TrimSpace(c.Mode),
		SSID:       strings.TrimSpace(c.SSID),
		Password:   strings.TrimSpace(c.Password),
		Addressing: c.Addressing.normalized(),
	}
}

// Validate implements Model: first failing rule wins.
func (c WifiConfig) Validate() error {
	if strings.TrimSpace(c.SSID) == "" {
		return errors.New("SSID is required")
	}
	if c.Mode != "ap" && len(c.Password) < 8 {
		return errors.New("password must be at least 8 characters in client mode")
	}
	return c.Addressing.validate()
}

// FormValues implements Model.
func (c WifiConfig) FormValues() url.Values {
	v := url.Values{}
	v.Set("mode", c.Mode)
	v.Set("ssid", c.SSID)
	v.Set("password", c.Password)
	c.Addressing.formInto(v)
	return v
}

// FieldMap implements Model.
func (c WifiConfig) FieldMap() map[string]string {
	m := map[string]string{
		"mode":     c.Mode,
		"ssid":     c.SSID,
		"password": c.Password,
	}
	c.Addressing.fieldsInto(m)
	return m
}
