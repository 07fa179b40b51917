package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/bleriot/skiff/internal/api"
	"github.com/bleriot/skiff/internal/config"
	"github.com/bleriot/skiff/internal/control"
	"github.com/bleriot/skiff/internal/logging"
	"github.com/bleriot/skiff/internal/tokenstore"
)

// newControlClient loads config, sets up logging, and builds an
// authenticated control client. The session token is reused from the token
// store when still valid, otherwise a fresh login is performed and the new
// token persisted.
func newControlClient(ctx context.Context) (*control.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Setup(cfg); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	session, err := openSession(ctx, cfg)
	if err != nil {
		return nil, err
	}

	defaultEndpoint := cfg.Server.DefaultEndpoint
	if endpoint > 0 {
		defaultEndpoint = endpoint
	}

	return control.New(session, control.Config{DefaultEndpoint: defaultEndpoint}), nil
}

func openSession(ctx context.Context, cfg *config.Config) (*api.Session, error) {
	opts := api.Options{
		Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		RateLimit: rate.Limit(cfg.Rate.RPS),
		RateBurst: cfg.Rate.Burst,
	}

	storePath, err := tokenstore.DefaultPath()
	if err != nil {
		log.Warn().Err(err).Msg("Token store unavailable, will authenticate fresh")
		return freshSession(ctx, cfg, opts)
	}
	store, err := tokenstore.Open(storePath)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to open token store, will authenticate fresh")
		return freshSession(ctx, cfg, opts)
	}
	defer store.Close()

	if token, err := store.Load(cfg.Server.URL); err == nil && token != "" {
		opts.Token = token
		session := api.NewSession(cfg.Server.URL, opts)
		if session.IsValidated() {
			log.Debug().Msg("Reusing stored session token")
			return session, nil
		}
		log.Debug().Msg("Stored session token expired")
		opts.Token = ""
	}

	session, err := freshSession(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := store.Save(cfg.Server.URL, session.Token()); err != nil {
		log.Warn().Err(err).Msg("Failed to persist session token")
	}
	return session, nil
}

func freshSession(ctx context.Context, cfg *config.Config, opts api.Options) (*api.Session, error) {
	session := api.NewSession(cfg.Server.URL, opts)
	if cfg.Server.Username == "" || cfg.Server.Password == "" {
		return nil, fmt.Errorf("no stored session and no credentials configured (set server.username and server.password)")
	}
	if err := session.Authenticate(ctx, cfg.Server.Username, cfg.Server.Password); err != nil {
		return nil, err
	}
	return session, nil
}
