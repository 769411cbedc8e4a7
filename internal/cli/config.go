package cli

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the server-side settings for the CLI commands. The
// automaton definitions themselves are compiled in (see samples.go);
// this only configures how they are exposed.
type Config struct {
	Addr     string `yaml:"addr" env:"ARBOR_ADDR"`
	MCPPort  int    `yaml:"mcp_port" env:"ARBOR_MCP_PORT"`
	LogLevel string `yaml:"log_level" env:"ARBOR_LOG_LEVEL"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		MCPPort:  0,
		LogLevel: "info",
	}
}

// LoadConfig resolves settings with precedence defaults < file < env.
// A missing file is an error only when a path was given explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Optional default location, skip silently.
		default:
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
