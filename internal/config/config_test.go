// This test file verifies the configuration loading logic using Viper.

package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults when no config file", func(t *testing.T) {
		// Ensure no config file exists for this test
		os.Remove("config.yml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		if cfg.Port != 8080 {
			t.Errorf("Expected default port 8080, got %d", cfg.Port)
		}
		if cfg.Database.Path != "./cyweb.db" {
			t.Errorf("Expected default db path './cyweb.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Upload.MaxMB != 32 {
			t.Errorf("Expected default upload limit of 32 MB, got %d", cfg.Upload.MaxMB)
		}
		if cfg.Session.CleanupInterval != 60 {
			t.Errorf("Expected default cleanup interval of 60 minutes, got %d", cfg.Session.CleanupInterval)
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		configContent := `
port: 9999
database:
  path: "/tmp/test.db"
upload:
  max_mb: 8
unknown_setting: "should be ignored"
`
		// Create the config file in the current directory so Viper can find it.
		// Note: t.TempDir() is not used here because Viper looks in the CWD.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		if cfg.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Port)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Expected db path '/tmp/test.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Upload.MaxMB != 8 {
			t.Errorf("Expected upload limit of 8 MB, got %d", cfg.Upload.MaxMB)
		}
		if cfg.Session.CleanupInterval != 60 {
			t.Errorf("Expected default cleanup interval of 60, got %d", cfg.Session.CleanupInterval)
		}
	})
}
