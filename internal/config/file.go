package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every error caused by a malformed config
// file.
var ErrInvalidConfig = errors.New("invalid config")

// Settings holds the values a single config file may set. Zero values mean
// the file left the key out.
type Settings struct {
	BaseURL       string
	Timeout       time.Duration
	TimeScheme    string
	EventCategory string
	Duration      float64
	Aliases       map[string][]string
}

// fileConfig represents the raw TOML structure shared by the global and
// project files.
type fileConfig struct {
	API      apiConfig           `toml:"api"`
	Defaults defaultsConfig      `toml:"defaults"`
	Aliases  map[string][]string `toml:"aliases"`
}

// apiConfig represents the [api] section in TOML
type apiConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// defaultsConfig represents the [defaults] section in TOML
type defaultsConfig struct {
	TimeScheme    string   `toml:"time_scheme"`
	EventCategory string   `toml:"event_category"`
	Duration      *float64 `toml:"duration"`
}

// parseFile reads and validates a config file.
func parseFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	s := &Settings{
		BaseURL:       raw.API.BaseURL,
		TimeScheme:    raw.Defaults.TimeScheme,
		EventCategory: raw.Defaults.EventCategory,
		Aliases:       raw.Aliases,
	}

	if raw.API.Timeout != "" {
		d, err := time.ParseDuration(raw.API.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: timeout %q in %s must be a positive duration", ErrInvalidConfig, raw.API.Timeout, path)
		}
		s.Timeout = d
	}

	if raw.Defaults.Duration != nil {
		if *raw.Defaults.Duration <= 0 {
			return nil, fmt.Errorf("%w: duration in %s must be positive, got %v", ErrInvalidConfig, path, *raw.Defaults.Duration)
		}
		s.Duration = *raw.Defaults.Duration
	}

	return s, nil
}

// merge overlays the values set in other onto s. Alias keywords in other
// replace the same keyword in s.
func (s *Settings) merge(other *Settings) {
	if other == nil {
		return
	}
	if other.BaseURL != "" {
		s.BaseURL = other.BaseURL
	}
	if other.Timeout != 0 {
		s.Timeout = other.Timeout
	}
	if other.TimeScheme != "" {
		s.TimeScheme = other.TimeScheme
	}
	if other.EventCategory != "" {
		s.EventCategory = other.EventCategory
	}
	if other.Duration != 0 {
		s.Duration = other.Duration
	}
	for keyword, aliases := range other.Aliases {
		if s.Aliases == nil {
			s.Aliases = make(map[string][]string)
		}
		s.Aliases[keyword] = aliases
	}
}
