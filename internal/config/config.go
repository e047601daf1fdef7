// ABOUTME: Configuration loading and parsing for orgadmin
// ABOUTME: YAML files with environment variable expansion and fail-fast validation

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the complete orgadmin configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds the HTTP listen address
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// StorageConfig selects and parameterizes the record store backend
type StorageConfig struct {
	// Backend is one of: memory, file, bolt, sqlite, postgres, mongo
	Backend string `yaml:"backend"`
	// Path applies to the file, bolt and sqlite backends
	Path string `yaml:"path"`
	// DSN applies to the postgres and mongo backends
	DSN string `yaml:"dsn"`
	// Database names the mongo database (default "orgadmin")
	Database string `yaml:"database"`
}

// AuthConfig holds session signing configuration. SessionSecret has no
// default in any environment; startup fails when it is unset.
type AuthConfig struct {
	SessionSecret string `yaml:"session_secret"`
	// SecureCookies marks the session cookie Secure; set in production
	SecureCookies bool `yaml:"secure_cookies"`
}

// BootstrapConfig controls first-run creation of an organization and owner
type BootstrapConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OrgName    string `yaml:"org_name"`
	OwnerEmail string `yaml:"owner_email"`
	OwnerName  string `yaml:"owner_name"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. If the environment variable is not set, it is
// replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure
// encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	// A guessable or absent signing key must never pass in any environment
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("auth.session_secret is required; refusing to start without one")
	}

	switch c.Storage.Backend {
	case "":
		return fmt.Errorf("storage.backend is required")
	case "memory":
		// nothing else needed
	case "file", "bolt", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	case "postgres", "mongo":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	if c.Bootstrap.Enabled && c.Bootstrap.OwnerEmail == "" {
		return fmt.Errorf("bootstrap.owner_email is required when bootstrap is enabled")
	}

	return nil
}
