// This file defines the configuration structure for the application.
package config

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Upload struct {
		MaxMB int64 `mapstructure:"max_mb"`
	} `mapstructure:"upload"`
	Session struct {
		CleanupInterval int `mapstructure:"cleanup_interval"` // minutes
	} `mapstructure:"session"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	// Environment variables with a "CYWEB_" prefix override file values,
	// e.g. CYWEB_DATABASE_PATH overrides the `database.path` key.
	viper.SetEnvPrefix("CYWEB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./cyweb.db")
	viper.SetDefault("upload.max_mb", 32)
	viper.SetDefault("session.cleanup_interval", 60)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
		} else {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Watch re-reads config.yml whenever it changes on disk and passes the fresh
// Config to onChange. Unparseable edits are logged and skipped.
func Watch(onChange func(*Config)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("Config file changed: %s", e.Name)
		var config Config
		if err := viper.Unmarshal(&config); err != nil {
			log.Printf("Ignoring config reload, unmarshal failed: %v", err)
			return
		}
		onChange(&config)
	})
	viper.WatchConfig()
}
