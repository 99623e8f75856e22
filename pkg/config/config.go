/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the savekit configuration
type Config struct {
	Backup      Backup  `yaml:"backup"`
	MetricsFile string  `yaml:"metrics_file,omitempty"`
	ProfileDir  string  `yaml:"profile_dir,omitempty"`
	Logging     Logging `yaml:"logging"`
}

// Backup controls the snapshot store used before files are overwritten
type Backup struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	Keep     int    `yaml:"keep_snapshots"`
	Compress bool   `yaml:"compress_snapshots"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Backup: Backup{
			Enabled:  true,
			Dir:      DefaultBackupDir(),
			Keep:     20,
			Compress: true,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Backup.Enabled && c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is required when backups are enabled")
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("backup.keep_snapshots must not be negative: %d", c.Backup.Keep)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a logging.level value to a slog level. An empty string
// means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid logging.level %q", s)
	}
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration to configPath, using
// backupDir for snapshots when it is not empty
func BootstrapConfig(configPath string, backupDir string) (*Config, error) {
	config := DefaultConfig()
	if backupDir != "" {
		config.Backup.Dir = backupDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./savekit.yaml"
	}

	// ~/.config/savekit/config.yaml
	return filepath.Join(homeDir, ".config", "savekit", "config.yaml")
}

// DefaultBackupDir returns the default snapshot directory
func DefaultBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./savekit-backups"
	}
	return filepath.Join(homeDir, ".local", "share", "savekit", "backups")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
