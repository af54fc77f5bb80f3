package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type the appliance advertises.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for appliance discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the appliance's default HTTP port
	DefaultPort = 80
)

// serialPattern matches appliance hostnames (e.g., "gate70141532.local")
var serialPattern = regexp.MustCompile(`^gate(\d+)\.local\.?$`)

// Scanner handles mDNS appliance discovery
type Scanner struct {
	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all gateway appliances on the local network.
func (s *Scanner) Scan(ctx context.Context) ([]*Appliance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	appliances := make([]*Appliance, 0)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			if a := s.parseServiceEntry(entry); a != nil {
				appliances = append(appliances, a)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Browse closes the entries channel when the context completes.
	<-ctx.Done()
	<-done

	return appliances, nil
}

// Find waits for a specific appliance by serial number.
func (s *Scanner) Find(ctx context.Context, serial string) (*Appliance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Appliance, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if a := s.parseServiceEntry(entry); a != nil && a.Serial == serial {
				select {
				case found <- a:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case a := <-found:
		return a, nil
	case <-ctx.Done():
		select {
		case a := <-found:
			return a, nil
		default:
		}
		return nil, fmt.Errorf("appliance with serial %s not found within timeout", serial)
	}
}

// parseServiceEntry converts a zeroconf service entry to an Appliance.
// Returns nil if the entry is not a gateway appliance.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Appliance {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	matches := serialPattern.FindStringSubmatch(hostname)
	if len(matches) < 2 {
		return nil
	}
	serial := matches[1]

	// Prefer IPv4, fall back to IPv6.
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are "key=value", or a bare key.
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Appliance{
		Serial:       serial,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
