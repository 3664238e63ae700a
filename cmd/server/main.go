// Command server runs the job tracker HTTP API.
//
//	@title						Job Tracker API
//	@version					1.0
//	@description				Job application tracking: applications, status history, feedback, interview questions and analytics.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-jobtracker-backend/internal/auth"
	"github.com/tbourn/go-jobtracker-backend/internal/config"
	httpapi "github.com/tbourn/go-jobtracker-backend/internal/http"
	"github.com/tbourn/go-jobtracker-backend/internal/observability"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/seed"
	"github.com/tbourn/go-jobtracker-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		sysutil.SetupLogger("info", false, nil)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, nil)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg config.Config) error {
	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	target := cfg.DB.Path
	if cfg.DB.Driver == config.DriverPostgres {
		target = cfg.DB.URL
	}
	db, err := repo.Open(cfg.DB.Driver, target, cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	if n, err := repo.PurgeExpiredIdempotency(ctx, db, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("purge idempotency keys")
	} else if n > 0 {
		log.Info().Int64("purged", n).Msg("expired idempotency keys removed")
	}

	if cfg.Seed.OnStart {
		f, err := seed.Load(cfg.Seed.Path)
		if err != nil {
			return err
		}
		res, err := seed.Apply(ctx, db, f)
		if err != nil {
			return err
		}
		log.Info().
			Int64("categories", res.Categories).
			Int64("questions", res.Questions).
			Msg("seed applied")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg, tokens)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("db_driver", cfg.DB.Driver).
			Str("base_path", cfg.APIBasePath).
			Str("version", version).
			Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	return waitForShutdown(srv, errCh, cfg.ShutdownTimeout)
}

// waitForShutdown blocks until the server fails or SIGINT/SIGTERM arrives,
// then drains in-flight requests within timeout.
func waitForShutdown(srv *http.Server, errCh <-chan error, timeout time.Duration) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
