package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/job-capture/internal/httpx"
	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/observability"
	"github.com/baxromumarov/job-capture/internal/scraper"
	"github.com/baxromumarov/job-capture/internal/store"
)

const leverPage = `<html><head><title>Acme - Backend Engineer</title></head><body>
<div class="posting-categories"><div class="location">Remote, Canada</div></div>
</body></html>`

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) FetchBytes(_ context.Context, rawURL string) ([]byte, int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	f.mu.Unlock()
	body, ok := f.pages[rawURL]
	if !ok {
		return nil, 404, &httpx.FetchError{Status: 404}
	}
	return []byte(body), 200, nil
}

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]store.Opportunity
	err   error
}

func (s *fakeStore) SaveOpportunity(_ context.Context, o store.Opportunity) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = map[string]store.Opportunity{}
	}
	s.saved[o.ID] = o
	return nil
}

func fixedNow() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

func newService(f httpx.Fetcher, st opportunityStore) *CaptureService {
	s := NewCaptureService(nil, f, st)
	s.now = fixedNow
	return s
}

func TestExtractWithMarkupSkipsFetch(t *testing.T) {
	f := &fakeFetcher{}
	s := newService(f, nil)

	c, err := s.Extract(context.Background(), "https://jobs.lever.co/acme/1", []byte(leverPage))
	require.NoError(t, err)
	assert.Empty(t, f.calls)
	assert.Equal(t, "Lever", c.Site)
	assert.Equal(t, fixedNow(), c.CapturedAt)
	assert.Equal(t, scraper.JobPosting{
		Position:        "Backend Engineer",
		Company:         "Acme",
		Location:        "Remote, Canada",
		WorkArrangement: normalize.Remote,
	}, c.Job)
}

func TestExtractFetchesWhenMarkupMissing(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://jobs.lever.co/acme/1": leverPage}}
	s := newService(f, nil)

	c, err := s.Extract(context.Background(), "https://jobs.lever.co/acme/1", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://jobs.lever.co/acme/1"}, f.calls)
	assert.Equal(t, "Backend Engineer", c.Job.Position)
}

func TestExtractErrors(t *testing.T) {
	_, err := newService(nil, nil).Extract(context.Background(), "https://jobs.lever.co/acme/1", nil)
	assert.ErrorIs(t, err, ErrNoFetcher)

	_, err = newService(&fakeFetcher{}, nil).Extract(context.Background(), "https://jobs.lever.co/acme/404", nil)
	var fe *httpx.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 404, fe.Status)
}

func TestExtractUnsupportedSite(t *testing.T) {
	c, err := newService(nil, nil).Extract(context.Background(), "https://example.com/jobs/1", []byte(leverPage))
	require.NoError(t, err)
	assert.Empty(t, c.Site)
	assert.True(t, c.Job.IsEmpty())
}

func TestSaveUsesStableID(t *testing.T) {
	st := &fakeStore{}
	s := newService(nil, st)

	c, err := s.Extract(context.Background(), "https://jobs.lever.co/acme/1", []byte(leverPage))
	require.NoError(t, err)

	o, err := s.Save(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, OpportunityID("https://jobs.lever.co/acme/1"), o.ID)
	assert.Equal(t, "Remote", o.WorkArrangement)
	assert.Equal(t, "Lever", o.Site)
	assert.Contains(t, st.saved, o.ID)

	_, err = s.Save(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, st.saved, 1)
}

func TestSaveErrors(t *testing.T) {
	_, err := newService(nil, nil).Save(context.Background(), Capture{URL: "https://x.test/1"})
	assert.Error(t, err)

	boom := errors.New("disk full")
	_, err = newService(nil, &fakeStore{err: boom}).Save(context.Background(), Capture{URL: "https://x.test/1"})
	assert.ErrorIs(t, err, boom)
}

func TestCaptureAllKeepsOrderAndReportsFailures(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://jobs.lever.co/acme/1": leverPage,
		"https://jobs.lever.co/acme/2": `<html><head><title>Acme - Designer</title></head></html>`,
		"https://example.com/about":    `<html><head><title>About</title></head></html>`,
	}}
	st := &fakeStore{}
	s := newService(f, st)

	urls := []string{
		"https://jobs.lever.co/acme/1",
		"https://jobs.lever.co/acme/missing",
		"https://jobs.lever.co/acme/2",
		"https://example.com/about",
	}
	out := s.CaptureAll(context.Background(), urls, 2, true)

	require.Len(t, out, 4)
	for i, u := range urls {
		assert.Equal(t, u, out[i].URL)
	}
	assert.Equal(t, "Backend Engineer", out[0].Job.Position)
	assert.NotEmpty(t, out[1].Error)
	assert.Equal(t, observability.ErrorNotFound, out[1].ErrorType)
	assert.Equal(t, "Designer", out[2].Job.Position)
	assert.True(t, out[3].Job.IsEmpty())
	assert.Empty(t, out[3].Error)

	// empty results are not stored
	assert.Len(t, st.saved, 2)
}

func TestOpportunityIDNormalizesURL(t *testing.T) {
	a := OpportunityID("https://jobs.lever.co/acme/1")
	assert.Equal(t, a, OpportunityID("https://jobs.lever.co/acme/1"))
	assert.NotEqual(t, a, OpportunityID("https://jobs.lever.co/acme/2"))
	assert.Len(t, a, 36)
}
