// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/shelfmark/internal/api"
	"github.com/tomtom215/shelfmark/internal/config"
	"github.com/tomtom215/shelfmark/internal/logging"
	"github.com/tomtom215/shelfmark/internal/session"
	"github.com/tomtom215/shelfmark/internal/supervisor"
	"github.com/tomtom215/shelfmark/internal/supervisor/services"
	"github.com/tomtom215/shelfmark/internal/wattpad"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().Str("config", cfg.String()).Msg("Starting Shelfmark")

	server, handler, err := buildServer(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	httpSvc := services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
		WithDrain(func() { handler.SetReady(false) })
	tree.AddAPIService(httpSvc)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Shelfmark stopped")
}

// buildServer wires the session factory, the Wattpad engine and the API
// router into an *http.Server. It performs no I/O.
func buildServer(cfg *config.Config) (*http.Server, *api.Handler, error) {
	factory, err := session.NewFactory(session.Config{
		BaseURL:        cfg.Wattpad.BaseURL,
		CookieDomain:   cfg.Wattpad.CookieDomain,
		UserAgent:      cfg.Wattpad.UserAgent,
		RequestTimeout: cfg.Wattpad.RequestTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("session factory: %w", err)
	}

	engine, err := wattpad.New(wattpad.Config{BaseURL: cfg.Wattpad.BaseURL})
	if err != nil {
		return nil, nil, fmt.Errorf("wattpad engine: %w", err)
	}

	handler := api.NewHandler(factory, engine, cfg.Server.MaxRequestBodyBytes)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:    cfg.Security.CORSOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}
	return server, handler, nil
}
