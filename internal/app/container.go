package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ochronus/gopremiumize/internal/config"
	"github.com/ochronus/gopremiumize/internal/services/premiumize"
	"github.com/sirupsen/logrus"
)

// Container centralizes the core dependencies used by the CLI.
// It uses interfaces so tests can substitute implementations.
type Container struct {
	Config          *config.Config
	Logger          *logrus.Logger
	Client          premiumize.ClientAPI
	ValidateAccount bool
}

// Option allows customizing the container during construction.
type Option func(*Container) error

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithClient overrides the default Premiumize client.
func WithClient(client premiumize.ClientAPI) Option {
	return func(c *Container) error {
		if client == nil {
			return fmt.Errorf("premiumize client cannot be nil")
		}
		c.Client = client
		return nil
	}
}

// WithAccountValidation enables or disables api key validation at startup (default: enabled).
func WithAccountValidation(validate bool) Option {
	return func(c *Container) error {
		c.ValidateAccount = validate
		return nil
	}
}

// NewContainer builds a Container with defaults derived from cfg.
// Options can be supplied to override specific dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := buildDefaultLogger(cfg.Loglevel)
	// Request diagnostics are logged at info, so verbose logging needs at least that level.
	if cfg.Premiumize.VerboseLogging && !logger.IsLevelEnabled(logrus.InfoLevel) {
		logger.SetLevel(logrus.InfoLevel)
	}

	container := &Container{
		Config:          cfg,
		Logger:          logger,
		ValidateAccount: true,
	}

	// Apply options early so tests can inject mocks before defaults are created.
	for _, opt := range opts {
		if err := opt(container); err != nil {
			return nil, err
		}
	}

	if container.Client == nil {
		client, err := buildClient(cfg, container.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create premiumize client: %w", err)
		}
		container.Client = client
	}

	if container.ValidateAccount {
		if _, err := container.Client.AccountInfo(ctx); err != nil {
			return nil, fmt.Errorf("failed to verify premiumize API key: %w", err)
		}
	}

	return container, nil
}

func buildClient(cfg *config.Config, logger *logrus.Logger) (*premiumize.Client, error) {
	opts := []premiumize.Option{
		premiumize.WithLogger(logger),
		premiumize.WithVerboseLogging(cfg.Premiumize.VerboseLogging),
		premiumize.WithSecretObfuscation(cfg.Premiumize.ObfuscateSecrets),
		premiumize.WithTimeout(time.Duration(cfg.Premiumize.Timeout) * time.Second),
	}
	if cfg.Premiumize.BaseURL != "" {
		opts = append(opts, premiumize.WithBaseURL(cfg.Premiumize.BaseURL))
	}
	return premiumize.NewClient(cfg.Premiumize.APIKey, opts...)
}

func buildDefaultLogger(levelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
