package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/WireCut/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.wirecut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wirecut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentExports is never nil
	if config.RecentExports == nil {
		config.RecentExports = []string{}
	}
	return config, nil
}

// maxRecentExports bounds the recent exports list.
const maxRecentExports = 10

// AddRecentExport moves path to the front of the recent exports list.
func AddRecentExport(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentExports {
		if p != path && len(recent) < maxRecentExports {
			recent = append(recent, p)
		}
	}
	config.RecentExports = recent
}
