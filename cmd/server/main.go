package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baxromumarov/job-capture/internal/api"
	"github.com/baxromumarov/job-capture/internal/config"
	"github.com/baxromumarov/job-capture/internal/core"
	"github.com/baxromumarov/job-capture/internal/httpx"
	"github.com/baxromumarov/job-capture/internal/scraper"
	"github.com/baxromumarov/job-capture/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	dbStore, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer dbStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dbStore.RunMigrations(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	registry := scraper.Default()
	capture := core.NewCaptureService(registry, httpx.New(cfg.FetchOptions()), dbStore)

	retention := core.NewRetentionService(dbStore, cfg.Retention.Days, cfg.Retention.Interval)
	retention.Start(ctx)

	srv := api.NewServer(capture, dbStore)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.Server.Port, "sites", registry.Names(), "fetcher", cfg.Fetch.Fetcher)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
