// Package discovery provides mDNS-based discovery of gateway appliances.
//
// Appliances advertise themselves as "_http._tcp" services under hostnames
// of the form gate<serial>.local. Discovery browses the local network,
// filters entries by that hostname pattern, and returns the appliance's
// address, port, and TXT-record metadata.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	appliances, err := scanner.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range appliances {
//	    fmt.Printf("Found: %s at %s (Serial: %s)\n", a.Hostname, a.IP, a.Serial)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Appliances must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can
// run simultaneously without interference.
package discovery
