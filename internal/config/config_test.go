// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Env var expansion, missing session secret, backend parameter checks

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
storage:
  backend: sqlite
  path: /var/lib/orgadmin/records.db
auth:
  session_secret: a-long-random-secret
  secure_cookies: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("ORGADMIN_TEST_SECRET", "from-the-environment")

	path := writeConfig(t, `
server:
  http_addr: ":8080"
storage:
  backend: memory
auth:
  session_secret: ${ORGADMIN_TEST_SECRET}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-the-environment", cfg.Auth.SessionSecret)
}

func TestLoad_MissingSessionSecretFails(t *testing.T) {
	// An unset ${VAR} expands to empty, which must fail validation rather
	// than fall back to any built-in secret
	path := writeConfig(t, `
server:
  http_addr: ":8080"
storage:
  backend: memory
auth:
  session_secret: ${ORGADMIN_UNSET_SECRET_VAR}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_secret")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:  ServerConfig{HTTPAddr: ":8080"},
			Storage: StorageConfig{Backend: "memory"},
			Auth:    AuthConfig{SessionSecret: "secret"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no http addr", func(c *Config) { c.Server.HTTPAddr = "" }, "http_addr"},
		{"no backend", func(c *Config) { c.Storage.Backend = "" }, "storage.backend"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "unknown storage.backend"},
		{"sqlite without path", func(c *Config) { c.Storage = StorageConfig{Backend: "sqlite"} }, "storage.path"},
		{"postgres without dsn", func(c *Config) { c.Storage = StorageConfig{Backend: "postgres"} }, "storage.dsn"},
		{"mongo without dsn", func(c *Config) { c.Storage = StorageConfig{Backend: "mongo"} }, "storage.dsn"},
		{"bootstrap without email", func(c *Config) { c.Bootstrap.Enabled = true }, "owner_email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
