package section

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gatewave/gatecon/internal/payload"
)

// Addressing is the IP addressing field group shared by the wireless and
// wired sections.
type Addressing struct {
	IPConfig string // "dhcp" or "static"; extraction passes unknown values through
	IP       string
	Netmask  string
	Gateway  string
	DNS1     string
	DNS2     string
}

// NormalizeIPConfig folds the addressing-mode spellings seen across firmware
// generations into dhcp/static. Unrecognized values pass through: defaulting
// is a render-time decision, not an extraction one.
func NormalizeIPConfig(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dhcp", "auto", "automatic":
		return "dhcp"
	case "static", "manual", "fixed":
		return "static"
	}
	return strings.TrimSpace(s)
}

func extractAddressing(f *payload.Fields) Addressing {
	return Addressing{
		IPConfig: NormalizeIPConfig(f.String("ip_config")),
		IP:       f.String("ip"),
		Netmask:  f.String("netmask"),
		Gateway:  f.String("gateway"),
		DNS1:     f.String("dns1"),
		DNS2:     f.String("dns2"),
	}
}

func addressingFromMap(m map[string]string) Addressing {
	get := func(k string) string { return strings.TrimSpace(m[k]) }
	return Addressing{
		IPConfig: NormalizeIPConfig(get("ip_config")),
		IP:       get("ip"),
		Netmask:  get("netmask"),
		Gateway:  get("gateway"),
		DNS1:     get("dns1"),
		DNS2:     get("dns2"),
	}
}

func (a Addressing) withDefaults() Addressing {
	if a.IPConfig != "static" {
		a.IPConfig = "dhcp"
	}
	return a
}

func (a Addressing) trimmed() Addressing {
	return Addressing{
		IPConfig: strings.TrimSpace(a.IPConfig),
		IP:       strings.TrimSpace(a.IP),
		Netmask:  strings.TrimSpace(a.Netmask),
		Gateway:  strings.TrimSpace(a.Gateway),
		DNS1:     strings.TrimSpace(a.DNS1),
		DNS2:     strings.TrimSpace(a.DNS2),
	}
}

// normalized prepares the group for diff comparison: all fields trimmed, and
// the static-only fields blanked when the mode is not static. Stale values
// behind a dhcp selection must not read as a pending change.
func (a Addressing) normalized() Addressing {
	out := a.trimmed()
	if out.IPConfig != "static" {
		out.IP, out.Netmask, out.Gateway, out.DNS1, out.DNS2 = "", "", "", "", ""
	}
	return out
}

func (a Addressing) anySet() bool {
	return a.IPConfig != "" || a.IP != "" || a.Netmask != "" ||
		a.Gateway != "" || a.DNS1 != "" || a.DNS2 != ""
}

func (a Addressing) formInto(v url.Values) {
	v.Set("ip_config", a.IPConfig)
	v.Set("ip", a.IP)
	v.Set("netmask", a.Netmask)
	v.Set("gateway", a.Gateway)
	v.Set("dns1", a.DNS1)
	v.Set("dns2", a.DNS2)
}

func (a Addressing) fieldsInto(m map[string]string) {
	m["ip_config"] = a.IPConfig
	m["ip"] = a.IP
	m["netmask"] = a.Netmask
	m["gateway"] = a.Gateway
	m["dns1"] = a.DNS1
	m["dns2"] = a.DNS2
}

// validate applies the static-mode rules: IP and netmask must be valid IPv4
// addresses; gateway and DNS entries are validated only when present.
// In dhcp mode nothing is checked.
func (a Addressing) validate() error {
	if strings.TrimSpace(a.IPConfig) != "static" {
		return nil
	}
	if !ValidIPv4(a.IP) {
		return errors.New("IP address must be a valid IPv4 address")
	}
	if !ValidIPv4(a.Netmask) {
		return errors.New("netmask must be a valid IPv4 address")
	}
	if s := strings.TrimSpace(a.Gateway); s != "" && !ValidIPv4(s) {
		return errors.New("gateway must be a valid IPv4 address")
	}
	if s := strings.TrimSpace(a.DNS1); s != "" && !ValidIPv4(s) {
		return errors.New("DNS 1 must be a valid IPv4 address")
	}
	if s := strings.TrimSpace(a.DNS2); s != "" && !ValidIPv4(s) {
		return errors.New("DNS 2 must be a valid IPv4 address")
	}
	return nil
}
