// Package sim implements a development simulator of the appliance's CGI
// control plane. Each section's info endpoint answers in a different payload
// shape the firmware has been observed to use (plain JSON, enveloped JSON,
// enveloped key=value text), so the console's full normalization pipeline is
// exercised against it. Applied changes are stored in memory and broadcast
// as JSON events over a WebSocket feed at /events.
package sim
