// Command capture extracts job postings from career-site pages and prints
// them as JSON, one result per line.
//
//	capture https://jobs.ashbyhq.com/acme/123 https://boards.greenhouse.io/acme/jobs/456
//	capture -file saved.html -url https://www.linkedin.com/jobs/view/789
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/baxromumarov/job-capture/internal/config"
	"github.com/baxromumarov/job-capture/internal/core"
	"github.com/baxromumarov/job-capture/internal/httpx"
	"github.com/baxromumarov/job-capture/internal/scraper"
	"github.com/baxromumarov/job-capture/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config")
	file := flag.String("file", "", "Read page markup from a local HTML file instead of fetching")
	address := flag.String("url", "", "Page address for -file")
	save := flag.Bool("save", false, "Store non-empty results as opportunities")
	concurrency := flag.Int("c", 0, "Pages fetched in parallel (default from config)")
	flag.Parse()

	if err := run(*configPath, *file, *address, *save, *concurrency, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "capture:", err)
		os.Exit(1)
	}
}

func run(configPath, file, address string, save bool, concurrency int, urls []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var db *store.Store
	if save {
		db, err = store.NewStore(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.RunMigrations(ctx); err != nil {
			return err
		}
	}

	svc := core.NewCaptureService(scraper.Default(), httpx.New(cfg.FetchOptions()), storeOrNil(db))
	enc := json.NewEncoder(os.Stdout)

	if file != "" {
		if address == "" {
			return fmt.Errorf("-url is required with -file")
		}
		markup, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		c, err := svc.Extract(ctx, address, markup)
		if err != nil {
			return err
		}
		if save && !c.Job.IsEmpty() {
			if _, err := svc.Save(ctx, c); err != nil {
				c.Error = err.Error()
			}
		}
		return enc.Encode(c)
	}

	if len(urls) == 0 {
		return fmt.Errorf("no urls given")
	}
	if concurrency <= 0 {
		concurrency = cfg.Capture.Concurrency
	}
	for _, c := range svc.CaptureAll(ctx, urls, concurrency, save) {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

// storeOrNil keeps a nil *store.Store from becoming a non-nil interface.
func storeOrNil(db *store.Store) interface {
	SaveOpportunity(context.Context, store.Opportunity) error
} {
	if db == nil {
		return nil
	}
	return db
}
