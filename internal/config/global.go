package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GlobalConfigDir is the name of the global config directory in home
	GlobalConfigDir = ".reclaim"

	// GlobalConfigFileName is the name of the global config file
	GlobalConfigFileName = "config.toml"
)

// LoadGlobalConfig loads the global configuration from ~/.reclaim/config.toml.
// Returns empty settings (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadGlobalConfigFromDir(homeDir)
}

// LoadGlobalConfigFromDir loads global config using the specified directory as home.
// This is useful for testing.
func LoadGlobalConfigFromDir(homeDir string) (*Settings, error) {
	configPath := filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Settings{}, nil
	}

	return parseFile(configPath)
}
