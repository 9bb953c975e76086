package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// PoliteClient is the plain net/http fetcher: per-host rate limits,
// robots.txt rules and retries on 429/5xx.
type PoliteClient struct {
	client *http.Client
	ua     string
	limits *hostLimits

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
}

func NewPoliteClient(userAgent string) *PoliteClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &PoliteClient{
		client: &http.Client{Timeout: defaultTimeout},
		ua:     userAgent,
		limits: newHostLimits(defaultEvery, defaultBurst),
		robots: map[string]*robotstxt.RobotsData{},
	}
}

func (p *PoliteClient) SetHostLimit(host string, every time.Duration, burst int) {
	p.limits.set(host, every, burst)
}

// NewRequest builds a GET for rawURL, defaulting the scheme to https.
func NewRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	u, err := parseTarget(rawURL)
	if err != nil {
		return nil, err
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}

// FetchBytes GETs rawURL and returns at most maxBodyBytes of the body.
// Statuses of 400 and above are returned as *FetchError.
func (p *PoliteClient) FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := NewRequest(ctx, rawURL)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", p.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if !p.allowed(ctx, req.URL) {
		return nil, 0, fmt.Errorf("%w: %s", ErrBlockedByRobots, req.URL)
	}

	resp, err := p.do(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, &FetchError{Status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body failed: %w", err)
	}
	return body, resp.StatusCode, nil
}

// do sends req up to maxAttempts times. The last retryable response is
// handed back as is so the caller sees its status.
func (p *PoliteClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	host := req.URL.Hostname()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := p.limits.wait(ctx, host); err != nil {
			return nil, err
		}

		resp, err := p.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			p.limits.backoff(host, attempt)
			continue
		}
		if retryable(resp.StatusCode) && attempt < maxAttempts-1 {
			resp.Body.Close()
			p.limits.backoff(host, attempt)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func (p *PoliteClient) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := normalizeHost(u.Hostname())
	p.mu.Lock()
	data, ok := p.robots[host]
	p.mu.Unlock()
	if ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.Scheme+"://"+u.Host+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.ua)

	if err := p.limits.wait(ctx, host); err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.robots[host] = data
	p.mu.Unlock()
	return data, nil
}

// allowed fails open when robots.txt cannot be read.
func (p *PoliteClient) allowed(ctx context.Context, u *url.URL) bool {
	data, err := p.robotsFor(ctx, u)
	if err != nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, p.ua)
}
