// Package main runs the card ledger API: balances, security codes, transfers and withdrawals.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/card-ledger/cmd/httpserver"
	"github.com/go-petr/card-ledger/internal/middleware"
	"github.com/go-petr/card-ledger/internal/notifier"
	"github.com/go-petr/card-ledger/pkg/configpkg"
	"github.com/go-petr/card-ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if err := dbpkg.Migrate(config.MigrationURL, config.DBSource); err != nil {
		logger.Fatal().Err(err).Msg("cannot migrate database")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	n, err := notifier.FromConfig(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create notifier")
	}

	dispatcher := notifier.NewDispatcher(n, logger, notifier.Config{
		Workers:   config.NotifyWorkers,
		QueueSize: config.NotifyQueueSize,
		Timeout:   config.NotifyTimeout,
	})

	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(db, logger, config, dispatcher)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: server,
	}

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("CARD LEDGER SERVER HAS STARTED")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := dispatcher.Close(); err != nil {
		logger.Error().Err(err).Msg("cannot close notifier")
	}
}
