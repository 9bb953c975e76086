package scraper

import (
	"log/slog"
	"sync"

	"github.com/baxromumarov/job-capture/internal/observability"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// Registry dispatches a page to the first extractor that claims its address.
// Registration order is priority order.
type Registry struct {
	mu         sync.RWMutex
	extractors []Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Default returns a registry holding every built-in site.
func Default() *Registry {
	return NewRegistry(
		Ashby{},
		Greenhouse{},
		Lever{},
		LinkedIn{},
		Indeed{},
		Glassdoor{},
		Workday{},
		WeWorkRemotely{},
		RemoteOK{},
	)
}

func (r *Registry) Register(e Extractor) {
	if e == nil {
		return
	}
	r.mu.Lock()
	r.extractors = append(r.extractors, e)
	r.mu.Unlock()
}

func (r *Registry) Find(address string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.extractors {
		if matches(e, address) {
			return e, true
		}
	}
	return nil, false
}

// Names lists the registered sites in priority order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.extractors))
	for _, e := range r.extractors {
		out = append(out, e.Name())
	}
	return out
}

// ExtractJobData extracts from p using the extractor owning address. An
// empty address means the snapshot's own URL. Unsupported sites yield an
// empty JobPosting.
func (r *Registry) ExtractJobData(p *page.Snapshot, address string) JobPosting {
	if address == "" && p != nil {
		address = p.URL
	}
	e, ok := r.Find(address)
	if !ok {
		if urlutil.IsATSHost(urlutil.Host(address)) {
			slog.Info("applicant tracking host without extractor", "url", address)
		} else {
			slog.Debug("no extractor for address", "url", address)
		}
		observability.IncUnsupported()
		return JobPosting{}
	}
	return safeExtract(e, p)
}

// safeExtract holds the never-panics contract for extractors registered
// from outside this package as well.
func safeExtract(e Extractor, p *page.Snapshot) (job JobPosting) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("extractor panicked", "site", e.Name(), "url", addressOf(p), "panic", r)
			observability.IncRecovered()
			job = JobPosting{}
		}
	}()
	return e.Extract(p)
}

// matches guards against predicates that panic on odd input.
func matches(e Extractor, address string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ownership predicate failed", "site", e.Name(), "url", address, "panic", r)
			ok = false
		}
	}()
	return e.Matches(address)
}
