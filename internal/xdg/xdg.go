// Package xdg provides XDG Base Directory Specification compliant paths
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory
const AppName = "gphotos-admin"

// ConfigDir returns the XDG config directory for gphotos-admin
// Priority: XDG_CONFIG_HOME > ~/.config/gphotos-admin
func ConfigDir() (string, error) {
	return baseDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for gphotos-admin
// Priority: XDG_DATA_HOME > ~/.local/share/gphotos-admin
func DataDir() (string, error) {
	return baseDir("XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the XDG state directory for gphotos-admin
// Priority: XDG_STATE_HOME > ~/.local/state/gphotos-admin
func StateDir() (string, error) {
	return baseDir("XDG_STATE_HOME", ".local", "state")
}

// LogsDir returns the directory for storing log files
// Uses state directory as the base
func LogsDir() string {
	stateDir, err := StateDir()
	if err != nil {
		// Fallback to data directory
		dataDir, _ := DataDir()
		return filepath.Join(dataDir, "logs")
	}
	return filepath.Join(stateDir, "logs")
}

// ConfigFile returns the default location of config.toml
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func baseDir(env string, homeParts ...string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{homeDir}, homeParts...)
	return filepath.Join(append(parts, AppName)...), nil
}
