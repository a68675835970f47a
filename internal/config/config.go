package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://www.premiumize.me/api"
	MinTimeout     = 1
	MaxTimeout     = 600
)

// Config represents the main application configuration
type Config struct {
	Loglevel   string           `toml:"loglevel"`
	Premiumize PremiumizeConfig `toml:"premiumize"`
}

// PremiumizeConfig holds Premiumize API configuration
type PremiumizeConfig struct {
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	VerboseLogging   bool   `toml:"verbose_logging"`
	ObfuscateSecrets bool   `toml:"obfuscate_secrets"`
	// Timeout is the request timeout in seconds.
	Timeout int `toml:"timeout"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Loglevel: "info",
		Premiumize: PremiumizeConfig{
			BaseURL:          DefaultBaseURL,
			ObfuscateSecrets: true,
			Timeout:          30,
		},
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "premiumize")

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads configuration from a TOML file. PREMIUMIZE_API_KEY, when set,
// overrides the api key from the file.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if key := os.Getenv("PREMIUMIZE_API_KEY"); key != "" {
		cfg.Premiumize.APIKey = key
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Loglevel); err != nil {
		return fmt.Errorf("loglevel must be one of: panic, fatal, error, warn, info, debug, trace")
	}

	if c.Premiumize.APIKey == "" {
		return fmt.Errorf("premiumize.api_key is required")
	}
	if c.Premiumize.BaseURL == "" {
		return fmt.Errorf("premiumize.base_url is required")
	}
	u, err := url.ParseRequestURI(c.Premiumize.BaseURL)
	if err != nil {
		return fmt.Errorf("premiumize.base_url is invalid: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("premiumize.base_url must use http or https")
	}

	if c.Premiumize.Timeout < MinTimeout || c.Premiumize.Timeout > MaxTimeout {
		return fmt.Errorf("premiumize.timeout must be between %d and %d seconds", MinTimeout, MaxTimeout)
	}

	return nil
}
