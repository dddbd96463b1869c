// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tradelens/tradelens/internal/biometric"
	"github.com/tradelens/tradelens/internal/config"
	"github.com/tradelens/tradelens/internal/credentials"
	"github.com/tradelens/tradelens/internal/logging"
	"github.com/tradelens/tradelens/internal/observability"
	"github.com/tradelens/tradelens/internal/session"
)

// App wires the session core for one CLI invocation: config, logging,
// storage, the platform shims, the backend, and the session store. Every
// command goes through here so each invocation boots the same way the
// mobile app does, including the startup session restore.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Store  *session.Store
	Prober *biometric.Prober

	// Local is set only when the "local" backend is configured; the
	// register command needs it directly.
	Local *session.LocalBackend

	obs *observability.Server
}

// newApp resolves configuration from the command's flags, builds the
// dependency graph, and runs the startup restore.
func newApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := logging.Setup("tradelens", version, cfg.LogFormat, cmd.ErrOrStderr())

	storage, err := session.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	gateway, err := newConfigGateway(cfg)
	if err != nil {
		return nil, err
	}
	prober := biometric.NewProber(gateway, logger)

	challenger := newPromptChallenger(cmd.InOrStdin(), cmd.OutOrStdout())
	authenticator, err := biometric.NewAuthenticator(prober, challenger, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		Prober: prober,
	}

	var backend session.Backend
	switch cfg.Backend {
	case config.BackendLocal:
		local, err := session.NewLocalBackend(storage, credentials.NewArgon2idHasher())
		if err != nil {
			return nil, err
		}
		app.Local = local
		backend = local
	default:
		mock, err := session.NewMockBackend(time.Duration(cfg.LoginDelayMS) * time.Millisecond)
		if err != nil {
			return nil, err
		}
		backend = mock
	}

	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obs := observability.NewServer(cfg.MetricsAddr, func() bool { return true })
		errCh, err := obs.Start()
		if err != nil {
			return nil, oops.Code("APP_METRICS_FAILED").With("addr", cfg.MetricsAddr).Wrap(err)
		}
		go func() {
			for err := range errCh {
				logger.Warn("observability server error", "error", err)
			}
		}()
		app.obs = obs
		metrics = obs.Metrics()
	}

	store, err := session.NewStore(session.Config{
		Backend:       backend,
		Authenticator: authenticator,
		Storage:       storage,
		Logger:        logger,
		Metrics:       metrics,
	})
	if err != nil {
		return nil, err
	}
	app.Store = store

	// Restore the persisted session before any command acts, mirroring
	// the app's boot sequence.
	store.CheckAuthStatus(cmd.Context())

	return app, nil
}

// Close stops background servers. Safe to call when none were started.
func (a *App) Close() {
	if a.obs != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.obs.Stop(stopCtx); err != nil {
			a.Logger.Warn("error stopping observability server", "error", err)
		}
	}
}
