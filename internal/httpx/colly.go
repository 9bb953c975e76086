package httpx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher fetches pages through a fresh Colly collector per attempt.
// Colly enforces robots.txt; pacing and backoff are shared with PoliteClient.
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
	limits    *hostLimits
}

func NewCollyFetcher(userAgent string) *CollyFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &CollyFetcher{
		userAgent: userAgent,
		timeout:   defaultTimeout,
		limits:    newHostLimits(defaultEvery, defaultBurst),
	}
}

func (f *CollyFetcher) SetHostLimit(host string, every time.Duration, burst int) {
	f.limits.set(host, every, burst)
}

func (f *CollyFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error) {
	target, err := parseTarget(rawURL)
	if err != nil {
		return nil, 0, err
	}
	host := target.Hostname()

	var (
		body   []byte
		status int
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := f.limits.wait(ctx, host); err != nil {
			return nil, 0, err
		}
		body, status, err = f.visit(ctx, target.String())
		if errors.Is(err, colly.ErrRobotsTxtBlocked) {
			return nil, status, fmt.Errorf("%w: %s", ErrBlockedByRobots, target)
		}
		if ctx.Err() != nil {
			return nil, status, ctx.Err()
		}
		if !retryable(status) {
			break
		}
		f.limits.backoff(host, attempt)
	}

	if status >= 400 {
		return nil, status, &FetchError{Status: status, Err: err}
	}
	if err != nil {
		return nil, status, err
	}
	return body, status, nil
}

func (f *CollyFetcher) visit(ctx context.Context, target string) ([]byte, int, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.StdlibContext(ctx),
		colly.MaxBodySize(maxBodyBytes),
	)
	c.IgnoreRobotsTxt = false
	c.SetRequestTimeout(f.timeout)

	var (
		body   []byte
		status int
		reqErr error
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Visit(target); err != nil && reqErr == nil {
		reqErr = err
	}
	return body, status, reqErr
}
