package premiumize

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// clientConfig is assembled by NewClient from the options and never changes afterwards.
type clientConfig struct {
	apiKey           Secret
	baseURL          string
	verbose          bool
	obfuscateSecrets bool
	redactor         Redactor
	logger           logrus.FieldLogger
	transport        Transport
	httpClient       *http.Client
	timeout          time.Duration
}

func defaultClientConfig(apiKey string) *clientConfig {
	return &clientConfig{
		apiKey:           NewSecret(apiKey),
		baseURL:          DefaultBaseURL,
		obfuscateSecrets: true,
		redactor:         DefaultRedactor(),
		timeout:          DefaultTimeout,
	}
}

// Option customizes the client during construction.
type Option func(*clientConfig) error

// WithBaseURL overrides the service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) error {
		u, err := url.ParseRequestURI(baseURL)
		if err != nil {
			return fmt.Errorf("invalid base url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base url scheme: %q", u.Scheme)
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithVerboseLogging enables per-request diagnostic logging.
func WithVerboseLogging(verbose bool) Option {
	return func(c *clientConfig) error {
		c.verbose = verbose
		return nil
	}
}

// WithSecretObfuscation controls whether the api key is redacted in logs
// (default: enabled). Disabling it logs a warning once at construction.
func WithSecretObfuscation(obfuscate bool) Option {
	return func(c *clientConfig) error {
		c.obfuscateSecrets = obfuscate
		return nil
	}
}

// WithRedactor overrides how the api key is masked in logs.
func WithRedactor(r Redactor) Option {
	return func(c *clientConfig) error {
		if r.Leading < 0 || r.Trailing < 0 || r.Leading+r.Trailing >= 1 {
			return fmt.Errorf("redactor must reveal less than the whole secret, got %.2f+%.2f", r.Leading, r.Trailing)
		}
		c.redactor = r
		return nil
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *clientConfig) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithTransport replaces the HTTP transport entirely. Base url, timeout and
// HTTP client options are ignored when it is set.
func WithTransport(t Transport) Option {
	return func(c *clientConfig) error {
		if t == nil {
			return fmt.Errorf("transport cannot be nil")
		}
		c.transport = t
		return nil
	}
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) error {
		if httpClient == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		c.timeout = timeout
		return nil
	}
}

// Settings is the public view of a client's configuration. The api key only
// appears in scrubbed form.
type Settings struct {
	APIKey                 string
	BaseURL                string
	VerboseLogging         bool
	ObfuscateSecretsInLogs bool
}

func (c *clientConfig) settings() Settings {
	key := ""
	if !c.apiKey.IsZero() {
		key = redactedText
	}
	return Settings{
		APIKey:                 key,
		BaseURL:                c.baseURL,
		VerboseLogging:         c.verbose,
		ObfuscateSecretsInLogs: c.obfuscateSecrets,
	}
}

// keyDisplay is the form of the api key written to logs.
func (c *clientConfig) keyDisplay() string {
	if !c.obfuscateSecrets {
		return c.apiKey.Reveal()
	}
	return c.redactor.Redact(c.apiKey.Reveal())
}
