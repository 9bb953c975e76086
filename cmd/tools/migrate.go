package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/baxromumarov/job-capture/internal/config"
	"github.com/baxromumarov/job-capture/internal/core"
	"github.com/baxromumarov/job-capture/internal/store"
)

// migrate applies the opportunity schema and, with -prune, drops expired
// captures in the same run.
func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config")
	dbURL := flag.String("db", "", "Database URL, overrides the config (postgres:// or sqlite://)")
	prune := flag.Bool("prune", false, "Also delete opportunities older than retention.days")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if *dbURL != "" {
		cfg.Database.URL = *dbURL
	}

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx); err != nil {
		slog.Error("failed to run migrations", "dialect", db.Dialect(), "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "dialect", db.Dialect())

	if *prune {
		deleted := core.NewRetentionService(db, cfg.Retention.Days, 0).RunOnce(ctx)
		slog.Info("expired opportunities pruned", "days", cfg.Retention.Days, "deleted", deleted)
	}
}
