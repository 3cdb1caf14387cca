package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/WireCut/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData bundles the settings a station needs to be rebuilt.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Profiles  []model.GCodeProfile `json:"profiles"`
}

// ExportAllData writes the config and custom profiles to a single JSON file.
func ExportAllData(exportPath string, config model.AppConfig, profiles []model.GCodeProfile) error {
	if profiles == nil {
		profiles = []model.GCodeProfile{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Profiles:  profiles,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentExports == nil {
		backup.Config.RecentExports = []string{}
	}
	if backup.Profiles == nil {
		backup.Profiles = []model.GCodeProfile{}
	}
	return backup, nil
}

// RestoreAllData applies a backup: the config goes to configPath and the
// profiles to profilesPath.
func RestoreAllData(backup BackupData, configPath, profilesPath string) error {
	if err := SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := SaveCustomProfiles(profilesPath, backup.Profiles); err != nil {
		return fmt.Errorf("failed to restore profiles: %w", err)
	}
	return nil
}
