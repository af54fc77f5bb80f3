package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName     = "gatecon"
	profileFile = "profiles.yaml"
)

// Store reads and writes a profile registry at a fixed path.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store at the OS-appropriate default location.
func NewStore() (*Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dir, profileFile)}, nil
}

// NewStoreAt creates a store at an explicit path. Used by tests and the
// --profiles flag.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string { return s.path }

// ConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/gatecon or $HOME/.config/gatecon
//   - macOS: $HOME/.config/gatecon (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\gatecon
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			return filepath.Join(userProfile, "AppData", "Local", appName), nil
		}
		return filepath.Join(localAppData, appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && runtime.GOOS != "darwin" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// Load reads the registry from disk. A missing file yields a fresh default
// registry, not an error.
func (s *Store) Load() (*Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read profile registry: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse profile registry: %w", err)
	}
	if registry.Version != 1 {
		return nil, fmt.Errorf("unsupported profile registry version: %d (expected 1)", registry.Version)
	}
	if registry.Sections == nil {
		registry.Sections = make(map[string]FieldSet)
	}
	if registry.Autofill != AutofillFill {
		registry.Autofill = AutofillHints
	}
	return &registry, nil
}

// Save writes the registry to disk atomically (temp file + rename) with
// user-only permissions.
func (s *Store) Save(r *Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal profile registry: %w", err)
	}

	header := []byte(`# gatecon profile registry
# Stores the last field set successfully applied to the appliance per
# section, used for autofill. Edit at your own risk.

`)
	data = append(header, data...)

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary profile file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save profile registry: %w", err)
	}
	return nil
}
