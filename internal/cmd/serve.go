package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cineticket/portal/internal/api"
	"github.com/cineticket/portal/internal/api/middleware"
	"github.com/cineticket/portal/internal/infrastructure/backend"
	"github.com/cineticket/portal/internal/infrastructure/probe"
	"github.com/cineticket/portal/internal/pkg/config"
	"github.com/cineticket/portal/internal/session"
	"github.com/cineticket/portal/internal/session/token"
	"github.com/cineticket/portal/pkg/logger"
)

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portal HTTP server",
		Long: `Start the portal HTTP server. Configuration comes from the environment
(PORT, AUTH_URL, API_URL, SESSION_STORE, ...). The server drains in-flight
requests on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(cmd.Context(), envconfig.OsLookuper())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, shutdownTimeout)
		},
	}
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "Maximum time to drain connections on shutdown")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, shutdownTimeout time.Duration) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cinema-portal",
	})

	storage, closeStorage, err := openStorage(ctx, cfg, logger.Component(log, "storage"))
	if err != nil {
		log.Error().Err(err).Str("store", cfg.Session.Store).Msg("session storage unavailable")
		return err
	}
	defer func() {
		if err := closeStorage(context.Background()); err != nil {
			log.Warn().Err(err).Msg("close session storage")
		}
	}()

	targets, err := probe.DefaultTargets(cfg.Backend.AuthURL, cfg.Backend.APIURL)
	if err != nil {
		return err
	}

	codec := token.NewCodec()
	e := api.NewRouter(api.Deps{
		Log:      logger.Component(log, "http"),
		Sessions: session.NewManager(storage, codec, log),
		Auth:     backend.NewAuthClient(cfg.Backend.AuthURL, cfg.Backend.Timeout, codec, log),
		Catalog:  backend.NewCatalog(cfg.Backend.APIURL, cfg.Backend.Timeout, log),
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		LoginPath:    cfg.Session.LoginPath,
		HomePath:     cfg.Session.HomePath,
		ProbeTargets: targets,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("auth_url", cfg.Backend.AuthURL).
			Str("api_url", cfg.Backend.APIURL).
			Str("session_store", cfg.Session.Store).
			Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
