package httpx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultUserAgent = "job-capture/1.0 (+https://github.com/baxromumarov/job-capture)"

	maxBodyBytes = 8 << 20

	// One request per second per host, bursts of two.
	defaultEvery   = time.Second
	defaultBurst   = 2
	defaultTimeout = 15 * time.Second
)

var (
	ErrBlockedByRobots = errors.New("blocked by robots.txt")

	errEmptyURL = errors.New("empty url")
)

// Fetcher returns the raw body of one page.
type Fetcher interface {
	FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error)
}

// FetchError carries the HTTP status of a page that could not be fetched.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Limit struct {
	Every time.Duration
	Burst int
}

type Options struct {
	// Kind is "colly" or "http" (the default).
	Kind       string
	UserAgent  string
	Timeout    time.Duration
	HostLimits map[string]Limit
}

func New(opts Options) Fetcher {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "colly":
		f := NewCollyFetcher(opts.UserAgent)
		if opts.Timeout > 0 {
			f.timeout = opts.Timeout
		}
		for host, l := range opts.HostLimits {
			f.SetHostLimit(host, l.Every, l.Burst)
		}
		return f
	default:
		c := NewPoliteClient(opts.UserAgent)
		if opts.Timeout > 0 {
			c.client.Timeout = opts.Timeout
		}
		for host, l := range opts.HostLimits {
			c.SetHostLimit(host, l.Every, l.Burst)
		}
		return c
	}
}
