package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lordvidex/oncall-gateway/internal/alert"
	"github.com/lordvidex/oncall-gateway/internal/config"
	"github.com/lordvidex/oncall-gateway/internal/oncall"
	"github.com/lordvidex/oncall-gateway/internal/server"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "f", "", "optional yaml file with config overrides")
}

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.NewConsoleWriter()).
		With().Timestamp().Str("service", "oncall-gateway").Logger()

	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed parsing config")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	logger.Info().Str("addr", cfg.Addr()).Msg("config parsed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// outbound calls from both clients go through one shared http.Client
	httpClient := &http.Client{}

	resolver := oncall.New(
		oncall.WithURL(cfg.RosterBaseURL),
		oncall.WithAPIKey(cfg.RosterAPIKey),
		oncall.WithTimeout(cfg.RequestTimeout),
		oncall.WithHTTPClient(httpClient),
		oncall.WithLogger(logger),
	)
	sender := alert.New(
		alert.WithURL(cfg.AlertBaseURL),
		alert.WithToken(cfg.AlertToken),
		alert.WithHTTPClient(httpClient),
		alert.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.New(logger, resolver, sender).Handler(),
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutdown requested, draining in-flight requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("error during shutdown")
		}
	}()

	logger.Info().Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("failed to run server")
	}
	logger.Info().Msg("server stopped")
}
