package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON server config")
	flag.Parse()

	cfg, err := LoadServerConfig(*configPath, os.LookupEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := setupLogging(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("logging")
	}
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("backend exited")
	}
}

func run(cfg ServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := NewAnalytics(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer func() {
		if err := events.Close(); err != nil {
			log.Warn().Err(err).Msg("analytics-close")
		}
	}()
	hub := NewHub()
	registry := NewRegistry(cfg.GameIdleTTL(), cfg.MaxGames)
	server := NewServer(cfg, registry, hub, events)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx.Done())
		return nil
	})
	g.Go(func() error {
		return registry.Run(gctx, cfg.SweepInterval())
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Msg("backend-listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("backend-shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("graceful shutdown failed")
			return httpServer.Close()
		}
		return nil
	})
	return g.Wait()
}
