package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baxromumarov/job-capture/internal/httpx"
	"github.com/baxromumarov/job-capture/internal/observability"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/scraper"
	"github.com/baxromumarov/job-capture/internal/store"
	"github.com/baxromumarov/job-capture/internal/urlutil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrNoFetcher = errors.New("no markup given and no fetcher configured")

type opportunityStore interface {
	SaveOpportunity(ctx context.Context, o store.Opportunity) error
}

// Capture is one extraction result together with where and when it was taken.
type Capture struct {
	URL        string             `json:"url"`
	Site       string             `json:"site,omitempty"`
	Job        scraper.JobPosting `json:"data"`
	CapturedAt time.Time          `json:"capturedAt"`
	Error      string             `json:"error,omitempty"`
	ErrorType  string             `json:"errorType,omitempty"`
}

// CaptureService ties page fetching, extraction and persistence together
// for the HTTP API and the capture CLI.
type CaptureService struct {
	registry *scraper.Registry
	fetcher  httpx.Fetcher
	store    opportunityStore
	now      func() time.Time
}

// NewCaptureService accepts a nil fetcher (callers must then pass markup)
// and a nil store (Save fails).
func NewCaptureService(registry *scraper.Registry, fetcher httpx.Fetcher, store opportunityStore) *CaptureService {
	if registry == nil {
		registry = scraper.Default()
	}
	return &CaptureService{
		registry: registry,
		fetcher:  fetcher,
		store:    store,
		now:      time.Now,
	}
}

func (s *CaptureService) Registry() *scraper.Registry {
	return s.registry
}

// Extract runs the site extractor for rawURL over markup, fetching the page
// first when markup is empty. Unsupported sites give an empty Job, not an error.
func (s *CaptureService) Extract(ctx context.Context, rawURL string, markup []byte) (Capture, error) {
	capturedAt := s.now().UTC()
	if len(markup) == 0 {
		body, err := s.fetch(ctx, rawURL)
		if err != nil {
			return Capture{}, err
		}
		markup = body
	}

	snap, err := page.FromHTML(rawURL, markup, capturedAt)
	if err != nil {
		observability.IncError(observability.ErrorParsing, "page")
		return Capture{}, fmt.Errorf("parse failed for %s: %w", rawURL, err)
	}

	slog.Debug("page parsed", "url", rawURL, "globals", snap.GlobalNames(), "structured", len(snap.StructuredData()))

	c := Capture{URL: rawURL, CapturedAt: capturedAt}
	if e, ok := s.registry.Find(rawURL); ok {
		c.Site = e.Name()
	}
	c.Job = s.registry.ExtractJobData(snap, rawURL)
	return c, nil
}

func (s *CaptureService) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if s.fetcher == nil {
		return nil, ErrNoFetcher
	}
	body, status, err := s.fetcher.FetchBytes(ctx, rawURL)
	if err != nil {
		observability.IncError(observability.ClassifyError(err), "fetch")
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	observability.IncPagesFetched()
	slog.Debug("page fetched", "url", rawURL, "status", status, "bytes", len(body))
	return body, nil
}

// Save stores c as an opportunity. The ID is derived from the normalized
// URL so capturing the same page again updates the record.
func (s *CaptureService) Save(ctx context.Context, c Capture) (store.Opportunity, error) {
	if s.store == nil {
		return store.Opportunity{}, errors.New("no store configured")
	}
	o := store.Opportunity{
		ID:              OpportunityID(c.URL),
		URL:             c.URL,
		Site:            c.Site,
		Position:        c.Job.Position,
		Company:         c.Job.Company,
		Location:        c.Job.Location,
		WorkArrangement: string(c.Job.WorkArrangement),
		Description:     c.Job.Description,
		Compensation:    c.Job.Compensation,
		PostedDate:      c.Job.PostedDate,
		CapturedAt:      c.CapturedAt,
	}
	if err := s.store.SaveOpportunity(ctx, o); err != nil {
		observability.IncError(observability.ErrorStore, "store")
		return store.Opportunity{}, err
	}
	observability.IncOpportunitiesSaved()
	return o, nil
}

// CaptureAll fetches and extracts urls with at most concurrency pages in
// flight. Per-URL failures are reported in Capture.Error; results keep the
// input order.
func (s *CaptureService) CaptureAll(ctx context.Context, urls []string, concurrency int, save bool) []Capture {
	if concurrency <= 0 {
		concurrency = 4
	}
	out := make([]Capture, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			c, err := s.Extract(ctx, u, nil)
			if err != nil {
				slog.Warn("capture failed", "url", u, "error", err)
				out[i] = Capture{URL: u, Error: err.Error(), ErrorType: observability.ClassifyError(err)}
				return nil
			}
			if save && !c.Job.IsEmpty() {
				if _, err := s.Save(ctx, c); err != nil {
					slog.Error("save failed", "url", u, "error", err)
					c.Error = err.Error()
					c.ErrorType = observability.ErrorStore
				}
			}
			out[i] = c
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// OpportunityID is a name-based UUID of the normalized address.
func OpportunityID(rawURL string) string {
	key := rawURL
	if normalized, _, err := urlutil.Normalize(rawURL); err == nil {
		key = normalized
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
