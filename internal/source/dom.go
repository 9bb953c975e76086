package source

import (
	"strings"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
)

// Text returns the cleaned text of the first selector that matches
// something non-empty. Selectors are tried in the order given. Snapshots
// built from state alone have no markup to read.
func Text(p *page.Snapshot, selectors ...string) (string, bool) {
	if !p.HasDocument() {
		return "", false
	}
	for _, sel := range selectors {
		if t := normalize.CleanText(p.Find(sel).First().Text()); t != "" {
			return t, true
		}
	}
	return "", false
}

// HTML returns the inner markup of the first non-empty match.
func HTML(p *page.Snapshot, selectors ...string) (string, bool) {
	if !p.HasDocument() {
		return "", false
	}
	for _, sel := range selectors {
		markup, err := p.Find(sel).First().Html()
		if err != nil {
			continue
		}
		if strings.TrimSpace(markup) != "" {
			return markup, true
		}
	}
	return "", false
}

// Attr returns an attribute from the first match that carries it.
func Attr(p *page.Snapshot, attr string, selectors ...string) (string, bool) {
	if !p.HasDocument() {
		return "", false
	}
	for _, sel := range selectors {
		if v, ok := p.Find(sel).First().Attr(attr); ok {
			if v = normalize.CleanText(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Meta looks a key up as og:/twitter: property, name and itemprop.
func Meta(p *page.Snapshot, keys ...string) (string, bool) {
	for _, key := range keys {
		for _, attr := range []string{"property", "name", "itemprop"} {
			if v, ok := Attr(p, "content", `meta[`+attr+`="`+key+`"]`); ok {
				return v, true
			}
		}
	}
	return "", false
}

func DocumentTitle(p *page.Snapshot) (string, bool) {
	return Text(p, "head > title", "title")
}
