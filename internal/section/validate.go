package section

import (
	"strconv"
	"strings"
)

// ValidIPv4 reports whether s is a canonical dotted-quad IPv4 address:
// exactly four decimal groups, each 0-255, no leading zeros ("0" is fine,
// "01" is not). The firmware's parser treats leading zeros as octal, so the
// console rejects them outright.
func ValidIPv4(s string) bool {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
		if strconv.Itoa(n) != p {
			return false
		}
	}
	return true
}
