// Package config loads the console's runtime settings from GATECON_*
// environment variables and validates them. It is distinct from package
// profile, which persists per-section field history: settings describe how
// to reach the appliance, profiles remember what was sent to it.
package config
