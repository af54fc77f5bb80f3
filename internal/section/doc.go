// Package section defines the typed configuration models for each appliance
// section (wireless, wired, modem, device daemon), the extractors that build
// them from normalized payloads, the diff rules used to gate saves against a
// server baseline, and the per-section validators.
package section
