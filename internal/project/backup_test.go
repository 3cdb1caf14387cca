package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/WireCut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.FeedRate = 12.5
	cfg.Theme = "dark"

	if err := ExportAllData(path, cfg, []model.GCodeProfile{testProfile("Saw A")}); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.FeedRate != 12.5 || backup.Config.Theme != "dark" {
		t.Errorf("unexpected config %+v", backup.Config)
	}
	if len(backup.Profiles) != 1 || backup.Profiles[0].Name != "Saw A" {
		t.Errorf("unexpected profiles %+v", backup.Profiles)
	}
}

func TestImportAllData_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for backup without version")
	}
}

func TestImportAllData_NilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0","config":{"theme":"light"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentExports == nil || backup.Profiles == nil {
		t.Error("expected nil slices to be replaced with empty ones")
	}
}

func TestRestoreAllData(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	profPath := filepath.Join(dir, "profiles.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPlateCount = 72
	backup := BackupData{Version: BackupVersion, Config: cfg, Profiles: []model.GCodeProfile{testProfile("Saw A")}}

	if err := RestoreAllData(backup, cfgPath, profPath); err != nil {
		t.Fatalf("RestoreAllData failed: %v", err)
	}

	loadedCfg, err := LoadAppConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if loadedCfg.DefaultPlateCount != 72 {
		t.Errorf("expected 72 plates, got %d", loadedCfg.DefaultPlateCount)
	}
	profiles, err := LoadCustomProfiles(profPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(profiles))
	}
}
