package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromTOML(t *testing.T, content string) (*Config, error) {
	t.Helper()

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "skiff.toml")
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	viper.Reset()
	viper.SetConfigFile(configFile)
	err = viper.ReadInConfig()
	require.NoError(t, err)

	return Load()
}

func TestConfig_Load_ValidBasicConfig(t *testing.T) {
	cfg, err := loadFromTOML(t, `
[server]
url = "https://deploy.example.com:9443"
username = "admin"
password = "password123"
timeout_seconds = 15
default_endpoint = 2

[logging]
enabled = true
level = "debug"
dir = "/tmp/skiff-logs"

[rate]
rps = 20.0
burst = 10
`)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://deploy.example.com:9443", cfg.Server.URL)
	assert.Equal(t, "admin", cfg.Server.Username)
	assert.Equal(t, "password123", cfg.Server.Password)
	assert.Equal(t, 15, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Server.DefaultEndpoint)

	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/skiff-logs", cfg.Logging.Dir)

	assert.Equal(t, 20.0, cfg.Rate.RPS)
	assert.Equal(t, 10, cfg.Rate.Burst)
}

func TestConfig_Load_MinimalConfigUsesDefaults(t *testing.T) {
	cfg, err := loadFromTOML(t, `
[server]
url = "http://localhost:9000"
`)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 0, cfg.Server.DefaultEndpoint)
	assert.False(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "skiff.log", cfg.Logging.File)
	assert.Equal(t, 10.0, cfg.Rate.RPS)
	assert.Equal(t, 5, cfg.Rate.Burst)
}

func TestConfig_Load_MissingURL(t *testing.T) {
	_, err := loadFromTOML(t, `
[server]
username = "admin"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.url is required")
}

func TestConfig_Load_BadScheme(t *testing.T) {
	_, err := loadFromTOML(t, `
[server]
url = "ftp://deploy.example.com"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http:// or https://")
}

func TestConfig_Load_NegativeDefaultEndpoint(t *testing.T) {
	_, err := loadFromTOML(t, `
[server]
url = "http://localhost:9000"
default_endpoint = -1
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_endpoint")
}

func TestConfig_Load_BadTimeout(t *testing.T) {
	_, err := loadFromTOML(t, `
[server]
url = "http://localhost:9000"
timeout_seconds = 0
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds")
}

func TestConfig_Load_BadRate(t *testing.T) {
	_, err := loadFromTOML(t, `
[server]
url = "http://localhost:9000"

[rate]
rps = -3.0
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate.rps")
}
