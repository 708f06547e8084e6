package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"laptop-pricer/internal/artifacts"
	"laptop-pricer/internal/cfg"
	"laptop-pricer/internal/metrics"
	"laptop-pricer/internal/ml"
	"laptop-pricer/internal/server"
	"laptop-pricer/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// Artifacts are a hard startup dependency: without the model, the
	// encoders and the schema there is nothing to serve.
	bundle, err := artifacts.Load(artifacts.Paths{
		Model:    c.ModelPath,
		Encoders: c.EncodersPath,
		Columns:  c.ColumnsPath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("artifact load failed, cannot start")
	}

	m := metrics.New()
	mw := metrics.NewWrapper(m)

	predictor, err := ml.NewPredictor(bundle.Model, mw)
	if err != nil {
		log.Fatal().Err(err).Msg("predictor initialization failed")
	}

	store := initializeStorage(c)
	if store != nil {
		defer store.Close()
	}

	srv := server.New(bundle, predictor, store, mw, c.HTTPPort, c.RequestTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startMetricsServer(ctx, c)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("prediction server failed")
			cancel()
		}
	}()

	waitForShutdown(ctx)

	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("exiting")
}

// initializeStorage opens the history store if DATA_PATH is configured.
// History is optional; failure to open it only disables persistence.
func initializeStorage(c cfg.Settings) *storage.Store {
	if c.DataPath == "" {
		return nil
	}
	store, err := storage.New(c.DataPath)
	if err != nil {
		log.Warn().Err(err).Msg("storage initialization failed, continuing without history")
		return nil
	}
	log.Info().Str("data_path", c.DataPath).Msg("prediction history enabled")
	return store
}

// startMetricsServer serves Prometheus metrics on its own port.
func startMetricsServer(ctx context.Context, c cfg.Settings) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", c.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			if err := srv.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to shutdown metrics server")
			}
		}()

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func waitForShutdown(ctx context.Context) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info().Msg("shutdown signal received")
	case <-ctx.Done():
		log.Info().Msg("context canceled")
	}

	log.Info().Msg("shutting down gracefully...")
}
