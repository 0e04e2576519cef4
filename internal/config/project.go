package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the project configuration file
const ConfigFileName = "reclaim.toml"

// DiscoverProjectConfig finds and parses the reclaim.toml file by traversing
// up the directory tree from the current working directory. A missing file
// yields nil settings and no error.
func DiscoverProjectConfig() (*Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return discoverProjectConfigFrom(cwd)
}

// discoverProjectConfigFrom searches for reclaim.toml starting from the given directory
func discoverProjectConfigFrom(startDir string) (*Settings, error) {
	path, ok := findProjectConfig(startDir)
	if !ok {
		return nil, nil
	}
	return parseFile(path)
}

// findProjectConfig returns the nearest reclaim.toml at or above dir.
func findProjectConfig(dir string) (string, bool) {
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", false
		}
		dir = parent
	}
}
