// @title        Books API
// @version      1.0
// @description  Personal book tracking with paired access/refresh token authentication.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/readtrack/books-api/internal/api"
	"github.com/readtrack/books-api/internal/core/service"
	"github.com/readtrack/books-api/internal/infrastructure/queue"
	"github.com/readtrack/books-api/internal/infrastructure/security"
	"github.com/readtrack/books-api/internal/pkg/config"
	"github.com/readtrack/books-api/pkg/logger"
)

const serviceName = "books-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
	})
	if cfg.LogPretty {
		figure.NewFigure(serviceName, "cybermedium", true).Print()
		fmt.Println()
	}

	sec := cfg.Security()
	codec, err := security.NewJWTCodec(sec)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(sec)

	st, err := openStores(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}

	// Audit workers are stopped only after the HTTP server has drained.
	auditCtx, stopAudit := context.WithCancel(context.WithoutCancel(ctx))
	dispatcher := queue.NewDispatcher(
		cfg.AuditWorkers,
		service.NewAuditService(st.audit, logger.Component("audit")),
		logger.Component("audit-queue"),
	)
	dispatcher.Start(auditCtx)

	e := api.NewRouter(api.Dependencies{
		AuthService: service.NewAuthService(st.users, codec, hasher, dispatcher, logger.Component("auth")),
		BookService: service.NewBookService(st.books, logger.Component("books")),
		Gate:        service.NewGate(st.users, codec),
		Health:      st.health,
		Logger:      logger.Component("http"),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.StoreDriver).
			Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	return shutdown(cfg, log, e.Shutdown, stopAudit, dispatcher, st)
}

func shutdown(
	cfg *config.Config,
	log zerolog.Logger,
	stopHTTP func(context.Context) error,
	stopAudit context.CancelFunc,
	dispatcher *queue.Dispatcher,
	st *stores,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	err := stopHTTP(ctx)
	if err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopAudit()
	dispatcher.Wait()
	st.Close(ctx)

	log.Info().Msg("server stopped")
	return err
}
