package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("MIXPLUGIN_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("MIXPLUGIN_API_KEY"),
		TokenFile: getEnvOrDefault("MIXPLUGIN_API_KEY_FILE", defaultTokenFile()),
		Output:    "text",
	}
}

// LoadToken loads the API key from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No key file is fine, auth may be disabled
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mixplugin/api-key"
	}
	return filepath.Join(home, ".mixplugin", "api-key")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
