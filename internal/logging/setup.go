package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bleriot/skiff/internal/config"
)

// Setup initializes the logging system based on the configuration
func Setup(cfg *config.Config) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
		log.Warn().Str("invalid_level", cfg.Logging.Level).Msg("Invalid log level, using info")
	}
	zerolog.SetGlobalLevel(level)

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}

	if !cfg.Logging.Enabled {
		// Keep console logging only
		log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()
		return nil
	}

	// Create logs directory with secure permissions (0700 - owner only)
	if err := os.MkdirAll(cfg.Logging.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFile := filepath.Join(cfg.Logging.Dir, cfg.Logging.File)
	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	}

	// Set file permissions to be secure (readable only by owner)
	if err := os.Chmod(logFile, 0600); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", logFile).Msg("Failed to set secure permissions on log file")
	}

	multiWriter := io.MultiWriter(consoleWriter, fileWriter)
	log.Logger = zerolog.New(multiWriter).With().Timestamp().Logger()

	log.Info().
		Str("log_file", logFile).
		Str("level", level.String()).
		Msg("File logging initialized")

	return nil
}
