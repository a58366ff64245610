package cli

import (
	"os"

	"github.com/nfctrack/attendctl/internal/token"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ATTENDCTL_SERVER", "http://localhost:8080/api"),
		TokenFile: getEnvOrDefault("ATTENDCTL_TOKEN_FILE", token.DefaultPath()),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
