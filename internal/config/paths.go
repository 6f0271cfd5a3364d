package config

import (
	"os"
	"path/filepath"
)

// appName names the user config directory.
const appName = "semcommit"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/semcommit/config.yml
// - macOS: ~/Library/Application Support/semcommit/config.yml
// - Windows: %APPDATA%\semcommit\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// ProjectConfigPath returns the project-level YAML config in dir.
// An empty dir means the current directory.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ".semcommit.yml")
}

// ProjectJSONConfigPath returns the project-level JSON config in dir.
func ProjectJSONConfigPath(dir string) string {
	return filepath.Join(dir, ".semcommit.json")
}
