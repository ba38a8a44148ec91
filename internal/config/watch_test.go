package config

import (
	"os"
	"testing"
	"time"
)

func TestWatchReloadsConfig(t *testing.T) {
	configPath := "config.yml"
	if err := os.WriteFile(configPath, []byte("port: 9999\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	defer os.Remove(configPath)

	if _, err := Load(); err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}

	reloaded := make(chan *Config, 8)
	Watch(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	if err := os.WriteFile(configPath, []byte("port: 7777\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config file: %v", err)
	}

	// The watcher may fire more than once per write; wait for the final value.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Port == 7777 {
				return
			}
		case <-deadline:
			t.Fatal("Config change was not observed within the deadline")
		}
	}
}
