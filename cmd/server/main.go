// Command server runs the Weboid site backend: the HTTP API behind the
// public website's contact forms, website assessment requests, and support
// tickets.
//
// Startup order:
//  1. Load .env (if present) and the typed configuration
//  2. Configure structured logging (zerolog)
//  3. Initialize OpenTelemetry tracing (optional)
//  4. Open the record store (SQLite, or in-memory when no DB path is set)
//  5. Wire the Mailjet dispatcher (logs instead of sending without keys)
//  6. Serve until SIGINT/SIGTERM, then shut down gracefully
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weboid/site-backend/internal/config"
	httpapi "github.com/weboid/site-backend/internal/http"
	"github.com/weboid/site-backend/internal/mail"
	"github.com/weboid/site-backend/internal/observability"
	"github.com/weboid/site-backend/internal/store"
	"github.com/weboid/site-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is a local convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().
		Str("version", version).
		Str("env", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("starting site backend")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	st := store.Open(cfg.DBPath, cfg.OTEL.Enabled)

	var sender mail.Sender
	if cfg.Mail.APIKeyPublic != "" && cfg.Mail.APIKeyPrivate != "" {
		sender = mail.NewMailjetSender(cfg.Mail.APIKeyPublic, cfg.Mail.APIKeyPrivate)
		log.Info().Msg("mailjet sender configured")
	} else {
		log.Warn().Msg("mailjet keys not set; emails will be logged, not sent")
	}
	dispatcher := mail.NewDispatcher(sender)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, st, dispatcher, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
