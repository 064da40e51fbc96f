package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Save persists the configuration to <projectDir>/.forge/config.yaml,
// stamping creation metadata if it is not already set.
//
// The file is written atomically (temp file + rename) so an interrupted save
// never leaves a half-written config behind.
func Save(cfg *Config, projectDir, forgeVersion string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	stamped := *cfg
	if stamped.Metadata.CreatedAt == "" {
		stamped.Metadata.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if stamped.Metadata.ForgeVersion == "" {
		stamped.Metadata.ForgeVersion = forgeVersion
	}

	data, err := yaml.Marshal(&stamped)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	dir := filepath.Join(projectDir, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", ConfigDirName, err)
	}

	fullPath := filepath.Join(dir, ConfigFileName)
	tmpPath := fullPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}
