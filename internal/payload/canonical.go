package payload

import "strings"

// aliasTable maps the key spellings observed across firmware generations to
// the canonical field vocabulary. Unknown keys pass through lower-cased.
var aliasTable = map[string]string{
	"ip_config": "ip_config",
	"ipcfg":     "ip_config",
	"addrmode":  "ip_config",

	"ip":      "ip",
	"address": "ip",
	"ipaddr":  "ip",

	"netmask": "netmask",
	"mask":    "netmask",

	"gateway": "gateway",
	"gw":      "gateway",

	"dns":  "dns1",
	"dns1": "dns1",
	"dns2": "dns2",

	"mode": "mode",
	"ssid": "ssid",

	"password": "password",
	"pass":     "password",
	"psk":      "password",
	"key":      "password",

	"modem_mode": "mode",
	"modem_rate": "rate",
	"modem_ldpc": "ldpc",
	"rate":       "rate",
	"ldpc":       "ldpc",
}

// Canonicalize rewrites a mapping into the canonical vocabulary: keys are
// lower-cased, trimmed, and folded through the alias table; values are
// string-coerced (container values are dropped). When an entry targets dns1
// and that slot is already occupied, the entry lands in dns2 instead of
// overwriting: on the wire "dns" followed by "dns1" means primary then
// secondary. The result is stable under re-canonicalization.
func Canonicalize(f *Fields) *Fields {
	out := NewFields()
	if f == nil {
		return out
	}
	f.Range(func(k string, v any) bool {
		key := strings.ToLower(strings.TrimSpace(k))
		target, ok := aliasTable[key]
		if !ok {
			target = key
		}
		s, scalar := CoerceString(v)
		if !scalar {
			return true
		}
		if target == "dns1" && out.Has("dns1") {
			target = "dns2"
		}
		out.Set(target, s)
		return true
	})
	return out
}
