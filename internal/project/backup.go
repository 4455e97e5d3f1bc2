package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/PillBoard/internal/model"
)

// SettingsBackup is the file format used to move preferences between machines.
type SettingsBackup struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
}

// ExportSettings writes config to a standalone JSON file at exportPath.
func ExportSettings(exportPath string, config model.AppConfig) error {
	backup := SettingsBackup{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// ImportSettings reads a file written by ExportSettings.
// The caller is responsible for applying and saving the imported config.
func ImportSettings(importPath string) (SettingsBackup, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return SettingsBackup{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	backup := SettingsBackup{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return SettingsBackup{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if backup.Version == "" {
		return SettingsBackup{}, fmt.Errorf("invalid settings file: missing version field")
	}
	normalize(&backup.Config)
	return backup, nil
}
