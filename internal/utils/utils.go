package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const apiKeyPlaceholder = "{{PREMIUMIZE_API_KEY}}"

const configTemplate = `# Optional log level, default "info"
loglevel = "info"

[premiumize]
# Required. Your API key, found at https://www.premiumize.me/account
api_key = "{{PREMIUMIZE_API_KEY}}"

# Optional API endpoint, default "https://www.premiumize.me/api"
base_url = "https://www.premiumize.me/api"

# Optional. Log every request made to the API, default false.
# Requests are logged at info level, which this setting enables even when loglevel is higher.
verbose_logging = false

# Optional. Mask the API key in logs, default true. Only disable this while debugging.
obfuscate_secrets = true

# Optional request timeout in secs, default 30
timeout = 30
`

// RenderConfig returns the config template with apiKey filled in.
func RenderConfig(apiKey string) string {
	return strings.Replace(configTemplate, apiKeyPlaceholder, apiKey, 1)
}

// GenerateConfig writes a configuration file containing apiKey, backing up
// any existing file first. Progress is reported on out.
func GenerateConfig(out io.Writer, configPath, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("api key is required")
	}

	fmt.Fprintf(out, "Generating config %s\n", configPath)

	config := RenderConfig(apiKey)

	// Check if config file already exists and back it up
	if _, err := os.Stat(configPath); err == nil {
		backupPath := configPath + ".bak"
		fmt.Fprintf(out, "Backing up config %s\n", configPath)
		if err := os.Rename(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file holds a credential, so keep it private to the user.
	fmt.Fprintf(out, "Writing %s\n", configPath)
	if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
