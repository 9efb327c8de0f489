// Package paths resolves where orgchart keeps its configuration file and
// its SQLite database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "orgchart"

// File names inside the resolved directories.
const (
	ConfigFileName   = "config.yaml"
	DatabaseFileName = "orgchart.db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ORGCHART_CONFIG_DIR"
	EnvDataDir   = "ORGCHART_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/orgchart (fallback ~/.config/orgchart)
// macOS:   ~/Library/Application Support/orgchart
// Windows: %APPDATA%/orgchart
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory.
//
// Linux:   $XDG_DATA_HOME/orgchart (fallback ~/.local/share/orgchart)
// macOS and Windows share the configuration directory.
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", ".local", "share")
}

func platformPath(xdgVar string, homeRel ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}

	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeRel...)
	return filepath.Join(append(parts, appName)...), nil
}

// ResolveConfigDir returns the configuration directory: the flag if set,
// else ORGCHART_CONFIG_DIR, else DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory: the flag if set, else
// ORGCHART_DATA_DIR, else the data_dir value from config.yaml, else
// DefaultDataDir.
func ResolveDataDir(flag, configured string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvDataDir), configured); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultDataDir()
}

// DatabasePath returns the SQLite database file inside dataDir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFileName)
}

// ConfigPath returns the configuration file inside configDir.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
