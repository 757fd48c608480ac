package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the CLI.
const (
	envAPIURL   = "HM_API_URL"
	envToken    = "HM_TOKEN"
	envUserID   = "HM_USER_ID"
	envLogLevel = "HM_LOG_LEVEL"
	envDevMode  = "HM_DEV_MODE"
)

// errNoServerURL is returned when no backend address is configured.
var errNoServerURL = errors.New("backend URL not configured: set " + envAPIURL + " or server_url in ~/.config/hm/config.yaml")

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Token     string `yaml:"token,omitempty"`
	UserID    int64  `yaml:"user_id,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hm", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL returns the backend URL from env var or config.
// There is no default: a missing URL is an error.
func getServerURL() (string, error) {
	if v := os.Getenv(envAPIURL); v != "" {
		return v, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.ServerURL == "" {
		return "", errNoServerURL
	}
	return cfg.ServerURL, nil
}

// getUserID returns the signed-in user's ID from env var or config, or 0.
func getUserID() int64 {
	if v := os.Getenv(envUserID); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.UserID
	}
	return 0
}

// ConfigStore is a session.TokenStore backed by the CLI config file.
// HM_TOKEN, when set, wins over the stored token.
type ConfigStore struct{}

// Token implements session.TokenStore.
func (ConfigStore) Token(ctx context.Context) (string, error) {
	if v := os.Getenv(envToken); v != "" {
		return v, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Token, nil
}

// Remove implements session.TokenStore.
func (ConfigStore) Remove(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		return nil
	}
	cfg.Token = ""
	return saveConfig(cfg)
}
