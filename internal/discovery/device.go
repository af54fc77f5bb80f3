package discovery

import (
	"fmt"
	"time"
)

// Appliance represents a discovered gateway appliance on the network
type Appliance struct {
	// Serial is the appliance serial number (e.g., "70141532")
	Serial string

	// Hostname is the mDNS hostname (e.g., "gate70141532.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.4.16")
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "path=/", "fw=2.1.0"
	Metadata map[string]string

	// DiscoveredAt is when the appliance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the appliance
func (a *Appliance) String() string {
	return fmt.Sprintf("Gateway %s (%s) at %s:%d", a.Serial, a.Hostname, a.IP, a.Port)
}

// BaseURL returns the CGI base URL for the appliance
func (a *Appliance) BaseURL() string {
	return fmt.Sprintf("http://%s:%d/cgi-bin", a.IP, a.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (a *Appliance) GetMetadata(key string) string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata[key]
}
