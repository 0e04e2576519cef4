package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvAPIKey holds the API token.
	EnvAPIKey = "RECLAIM_API_KEY"

	// EnvAPIURL overrides the API base URL.
	EnvAPIURL = "RECLAIM_API_URL"

	// DotEnvFileName is loaded from the working directory before the
	// environment is read.
	DotEnvFileName = ".env"

	// DefaultTimeout is the HTTP timeout used when no file sets one.
	DefaultTimeout = 30 * time.Second
)

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Environment (RECLAIM_API_KEY, RECLAIM_API_URL, including .env)
// 2. Project config (reclaim.toml)
// 3. Global config (~/.reclaim/config.toml)
// 4. Built-in defaults
type ResolvedConfig struct {
	Token         string
	BaseURL       string
	Timeout       time.Duration
	TimeScheme    string
	EventCategory string
	Duration      float64
	Aliases       map[string][]string
}

// AliasKeywords returns the configured alias keywords in sorted order.
func (c *ResolvedConfig) AliasKeywords() []string {
	keywords := make([]string, 0, len(c.Aliases))
	for k := range c.Aliases {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// ResolveConfig loads .env, the global config and the project config, and
// merges them with the environment according to precedence rules.
func ResolveConfig() (*ResolvedConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return ResolveConfigWithHome(homeDir)
}

// ResolveConfigWithHome resolves config using a specified home directory.
// This is useful for testing.
func ResolveConfigWithHome(homeDir string) (*ResolvedConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	projectCfg, err := DiscoverProjectConfig()
	if err != nil {
		return nil, err
	}

	merged := &Settings{}
	merged.merge(globalCfg)
	merged.merge(projectCfg)

	resolved := &ResolvedConfig{
		Token:         os.Getenv(EnvAPIKey),
		BaseURL:       merged.BaseURL,
		Timeout:       DefaultTimeout,
		TimeScheme:    merged.TimeScheme,
		EventCategory: merged.EventCategory,
		Duration:      merged.Duration,
		Aliases:       merged.Aliases,
	}

	if merged.Timeout != 0 {
		resolved.Timeout = merged.Timeout
	}
	if url := os.Getenv(EnvAPIURL); url != "" {
		resolved.BaseURL = url
	}

	return resolved, nil
}

// loadDotEnv loads .env from the working directory. Variables already set
// in the process environment are left alone.
func loadDotEnv() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DotEnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}
