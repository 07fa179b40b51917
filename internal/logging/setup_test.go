package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bleriot/skiff/internal/config"
)

func TestSetup_LoggingDisabled(t *testing.T) {
	cfg := &config.Config{
		Logging: config.LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}

	err := Setup(cfg)
	require.NoError(t, err)
}

func TestSetup_LoggingEnabled(t *testing.T) {
	tempDir := t.TempDir()

	cfg := &config.Config{
		Logging: config.LoggingConfig{
			Enabled:    true,
			Level:      "debug",
			Dir:        filepath.Join(tempDir, "logs"),
			File:       "skiff.log",
			MaxSize:    1,
			MaxBackups: 1,
			MaxAge:     1,
		},
	}

	err := Setup(cfg)
	require.NoError(t, err)

	// The logs directory is created with owner-only permissions.
	info, err := os.Stat(cfg.Logging.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	cfg := &config.Config{
		Logging: config.LoggingConfig{
			Enabled: false,
			Level:   "chatty",
		},
	}

	// An unknown level is not fatal; setup falls back to info.
	err := Setup(cfg)
	require.NoError(t, err)
}
