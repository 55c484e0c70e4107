package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"chatserver/internal/chat"
	"chatserver/internal/config"
	"chatserver/internal/ops"
)

func main() {
	pflag.String("addr", ":5005", "chat listen address")
	pflag.String("ops-addr", ":9090", "metrics/health listen address")
	pflag.String("name", "TestChat", "server display name")
	pflag.Bool("debug", false, "verbose logging")
	pflag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(pflag.CommandLine)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}
	if cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	go func() {
		router := ops.SetupRouter(cfg.Debug)
		logger.Info().Str("addr", cfg.OpsAddr).Msg("ops endpoint started")
		if err := http.ListenAndServe(cfg.OpsAddr, router); err != nil {
			logger.Error().Err(err).Msg("ops endpoint failed")
		}
	}()

	srv := chat.NewServer(cfg.Addr, cfg.ServerName, cfg.EventBuf, cfg.OutBuf, logger)
	if err := srv.Start(); err != nil {
		logger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	srv.Stop()
}
