package core

import (
	"context"
	"log/slog"
	"time"
)

type retentionStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionService periodically drops opportunities captured more than
// Days ago.
type RetentionService struct {
	store    retentionStore
	days     int
	interval time.Duration
	now      func() time.Time
}

func NewRetentionService(store retentionStore, days int, interval time.Duration) *RetentionService {
	if days <= 0 {
		days = 90
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RetentionService{store: store, days: days, interval: interval, now: time.Now}
}

func (s *RetentionService) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *RetentionService) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on startup
	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce deletes expired opportunities and returns how many went.
func (s *RetentionService) RunOnce(ctx context.Context) int64 {
	cutoff := s.now().UTC().AddDate(0, 0, -s.days)
	count, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("retention cleanup failed", "error", err)
		return 0
	}
	if count > 0 {
		slog.Info("retention cleanup", "deleted", count, "cutoff", cutoff.Format(time.DateOnly))
	}
	return count
}
