package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := load("", "", envMap(nil))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cc := cfg.ClientConfig()
	assert.Equal(t, "localhost", cc.Host)
	assert.Equal(t, 8085, cc.Port)
	assert.Equal(t, 10*time.Second, cc.Timeout)
	assert.False(t, cc.TLSSkipVerify)
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cascade.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
host = "monitor.lan"
port = 9000
timeout = 2.5
output = "json"
`), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CASCADE_PORT=9100\nCASCADE_SECURE=true\n"), 0o644))

	cfg, err := load(file, envFile, envMap(map[string]string{
		"CASCADE_PORT":            "9200",
		"CASCADE_TLS_SKIP_VERIFY": "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "monitor.lan", cfg.Host)
	assert.Equal(t, 9200, cfg.Port, "process env beats .env")
	assert.True(t, cfg.Secure, ".env beats the file")
	assert.True(t, cfg.TLSSkipVerify)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	assert.Equal(t, OutputJSON, cfg.Output)
}

func TestMissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load(filepath.Join(dir, "nope.toml"), filepath.Join(dir, ".env"), envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestInvalidEnv(t *testing.T) {
	_, err := load("", "", envMap(map[string]string{"CASCADE_PORT": "eighty"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }},
		{"unknown output", func(c *Config) { c.Output = "yaml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
