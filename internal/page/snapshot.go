package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Snapshot is a read-only view of one page: its address, rendered document,
// embedded state globals and JSON-LD blocks. Nothing mutates it after
// construction, so extractors may share it across goroutines.
type Snapshot struct {
	URL        string
	CapturedAt time.Time

	doc        *goquery.Document
	rendered   bool
	globals    map[string]any
	structured []any
}

// Parse reads an HTML page and collects its embedded state and JSON-LD.
func Parse(address string, r io.Reader, capturedAt time.Time) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("page parse failed: %w", err)
	}
	return New(address, doc, ScanGlobals(doc), capturedAt), nil
}

func FromHTML(address string, markup []byte, capturedAt time.Time) (*Snapshot, error) {
	return Parse(address, bytes.NewReader(markup), capturedAt)
}

// New builds a snapshot from an already parsed document. Globals supplied by
// the host (for example state serialized by a browser) are taken as given.
// A nil doc is replaced by an empty one so selectors simply match nothing.
func New(address string, doc *goquery.Document, globals map[string]any, capturedAt time.Time) *Snapshot {
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}
	rendered := doc != nil
	if !rendered {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	copied := make(map[string]any, len(globals))
	for k, v := range globals {
		copied[k] = v
	}
	return &Snapshot{
		URL:        strings.TrimSpace(address),
		CapturedAt: capturedAt,
		doc:        doc,
		rendered:   rendered,
		globals:    copied,
		structured: scanStructuredData(doc),
	}
}

// Global returns a named embedded state object such as "__appData".
func (s *Snapshot) Global(name string) (any, bool) {
	v, ok := s.globals[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// GlobalNames lists the captured state globals, sorted.
func (s *Snapshot) GlobalNames() []string {
	out := make([]string, 0, len(s.globals))
	for k := range s.globals {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StructuredData returns every decoded ld+json payload in document order.
func (s *Snapshot) StructuredData() []any {
	return s.structured
}

// Find runs a selector against the document. Snapshots built without a
// document return an empty selection.
func (s *Snapshot) Find(selector string) *goquery.Selection {
	return s.doc.Find(selector)
}

// HasDocument reports whether the snapshot was built from real markup.
func (s *Snapshot) HasDocument() bool {
	return s != nil && s.rendered
}

func scanStructuredData(doc *goquery.Document) []any {
	if doc == nil {
		return nil
	}
	var out []any
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			slog.Debug("skipping malformed ld+json block", "index", i, "error", err)
			return
		}
		out = append(out, payload)
	})
	return out
}
