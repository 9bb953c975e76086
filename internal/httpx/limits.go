package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxAttempts = 3
	baseBackoff = 500 * time.Millisecond
)

// hostLimits paces requests per host. After a throttled or failed attempt
// the host is held back until its backoff deadline passes.
type hostLimits struct {
	mu    sync.Mutex
	every time.Duration
	burst int
	hosts map[string]*hostState
}

type hostState struct {
	limiter *rate.Limiter
	until   time.Time
}

func newHostLimits(every time.Duration, burst int) *hostLimits {
	return &hostLimits{every: every, burst: burst, hosts: map[string]*hostState{}}
}

func (l *hostLimits) set(host string, every time.Duration, burst int) {
	if host == "" || every <= 0 || burst <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stateLocked(normalizeHost(host)).limiter = rate.NewLimiter(rate.Every(every), burst)
}

func (l *hostLimits) stateLocked(host string) *hostState {
	st, ok := l.hosts[host]
	if !ok {
		st = &hostState{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.hosts[host] = st
	}
	return st
}

// wait blocks until host is past its backoff deadline and has a token.
func (l *hostLimits) wait(ctx context.Context, host string) error {
	host = normalizeHost(host)
	for {
		l.mu.Lock()
		st := l.stateLocked(host)
		delay, limiter := time.Until(st.until), st.limiter
		l.mu.Unlock()

		if delay <= 0 {
			return limiter.Wait(ctx)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff pushes the host's deadline out by 500ms doubled per attempt.
func (l *hostLimits) backoff(host string, attempt int) {
	if attempt < 0 {
		attempt = 0
	}
	next := time.Now().Add(baseBackoff << attempt)

	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.stateLocked(normalizeHost(host))
	if next.After(st.until) {
		st.until = next
	}
}

// retryable reports statuses worth another attempt after backing off.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

// parseTarget resolves rawURL for fetching. Scheme-less addresses get https.
func parseTarget(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errEmptyURL
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u, nil
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
