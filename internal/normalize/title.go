package normalize

import (
	"regexp"
	"strings"
)

// Separators seen in document and og: titles, strongest first.
var titleSeparators = []string{" — ", " – ", " | ", " · ", " • ", " - "}

var (
	digitPattern      = regexp.MustCompile(`\d`)
	upperTokenPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	atPattern         = regexp.MustCompile(`^(.+?)\s+(?:at|@)\s+(.+)$`)
	hiringPattern     = regexp.MustCompile(`^(.+?)\s+hiring\s+(.+?)(?:\s+Job)?(?:\s+in\s+(.+?))?$`)
)

// CombinedTitle holds the pieces of a "Title - ... - Company" string.
type CombinedTitle struct {
	Position string
	Company  string
	Location string
}

// SplitCombinedTitle splits on the first separator present. The first segment
// is the position, the last the company, and with three or more segments the
// first inner one that looks like a place is the location.
func SplitCombinedTitle(s string) CombinedTitle {
	s = CleanText(s)
	if s == "" {
		return CombinedTitle{}
	}

	for _, sep := range titleSeparators {
		if !strings.Contains(s, sep) {
			continue
		}
		segs := splitNonEmpty(s, sep)
		if len(segs) < 2 {
			continue
		}
		out := CombinedTitle{Position: segs[0], Company: segs[len(segs)-1]}
		for _, inner := range segs[1 : len(segs)-1] {
			if LooksLikeLocation(inner) {
				out.Location = inner
				break
			}
		}
		return out
	}

	if m := atPattern.FindStringSubmatch(s); m != nil {
		return CombinedTitle{Position: strings.TrimSpace(m[1]), Company: strings.TrimSpace(m[2])}
	}
	return CombinedTitle{Position: s}
}

// SplitHiringTitle parses "Acme hiring Backend Engineer in Berlin, Germany",
// the og:title form used by LinkedIn and Glassdoor. Branding must already be
// stripped.
func SplitHiringTitle(s string) (CombinedTitle, bool) {
	m := hiringPattern.FindStringSubmatch(CleanText(s))
	if m == nil {
		return CombinedTitle{}, false
	}
	return CombinedTitle{
		Company:  strings.TrimSpace(m[1]),
		Position: strings.TrimSpace(m[2]),
		Location: strings.TrimSpace(m[3]),
	}, true
}

// LooksLikeLocation is a heuristic: digits, a comma or an all-caps token such
// as a state or country code, and no work-arrangement keyword.
func LooksLikeLocation(seg string) bool {
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return false
	}
	if _, ok := WorkArrangementOf(seg); ok {
		return false
	}
	return digitPattern.MatchString(seg) ||
		strings.Contains(seg, ",") ||
		upperTokenPattern.MatchString(seg)
}

// StripSiteSuffix drops trailing board branding such as " | LinkedIn".
func StripSiteSuffix(s string, suffixes ...string) string {
	s = CleanText(s)
	for _, suffix := range suffixes {
		if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
			return strings.TrimSpace(s[:len(s)-len(suffix)])
		}
	}
	return s
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
