package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the server looks for its YAML file relative to the working directory.
const DefaultPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string        `yaml:"port" env:"SERVER_PORT"`
		Mode            string        `yaml:"mode" env:"SERVER_MODE"`
		StoragePath     string        `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL   string        `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
		MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`

	Transcription struct {
		PlaceholderText string `yaml:"placeholder_text" env:"TRANSCRIPTION_PLACEHOLDER_TEXT"`
	} `yaml:"transcription"`

	Realtime struct {
		Enabled    bool `yaml:"enabled" env:"REALTIME_ENABLED"`
		SendBuffer int  `yaml:"send_buffer" env:"REALTIME_SEND_BUFFER"`
	} `yaml:"realtime"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration populated only with defaults.
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.MaxUploadBytes = 10 * 1024 * 1024
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Seed.Enabled = true

	config.Transcription.PlaceholderText = "This is a transcribed message from the audio file."

	config.Realtime.Enabled = true
	config.Realtime.SendBuffer = 64
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}

	if strings.TrimSpace(config.Server.StoragePath) == "" {
		return fmt.Errorf("server storage path is required")
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", config.Server.MaxUploadBytes)
	}

	if config.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q (want json or text)", config.Logging.Format)
	}

	if config.Realtime.SendBuffer <= 0 {
		return fmt.Errorf("realtime send buffer must be positive")
	}

	return nil
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// UploadsURL returns the URL prefix under which stored uploads are served.
func (c *Config) UploadsURL() string {
	return strings.TrimRight(c.Server.PublicBaseURL, "/") + "/uploads"
}
