package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Settings are the environment-derived runtime settings. Every variable is
// prefixed GATECON_ (GATECON_BASE_URL, GATECON_TIMEOUT, ...); command-line
// flags override them.
type Settings struct {
	// BaseURL is the appliance's CGI root.
	BaseURL string `env:"BASE_URL" envDefault:"http://gate.local/cgi-bin" validate:"required,url"`

	// TimeoutSeconds bounds each control-plane request.
	TimeoutSeconds int `env:"TIMEOUT" envDefault:"8" validate:"min=1,max=300"`

	// Autofill is the initial autofill mode when the profile registry has
	// not recorded a preference yet.
	Autofill string `env:"AUTOFILL" envDefault:"hints" validate:"oneof=hints fill"`
}

var validate = validator.New()

// Load parses and validates the settings from the environment.
func Load() (*Settings, error) {
	var cfg Settings
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GATECON_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &cfg, nil
}

// Timeout returns the request timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
