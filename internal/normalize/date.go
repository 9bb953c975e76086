package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var absoluteLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// Relative phrases, one pattern per locale. Group 1 is the count, group 2 the unit.
var relativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(minutes?|mins?|hours?|hrs?|days?|weeks?|months?)\s+ago`),
	regexp.MustCompile(`(?i)vor\s+(\d+)\+?\s*(minuten?|stunden?|tag(?:en?)?|wochen?|monat(?:en)?)`),
	regexp.MustCompile(`(?i)il y a\s+(\d+)\+?\s*(minutes?|heures?|jours?|semaines?|mois)`),
	regexp.MustCompile(`(?i)hace\s+(\d+)\+?\s*(minutos?|horas?|días?|dias?|semanas?|mes(?:es)?)`),
	regexp.MustCompile(`(?i)há\s+(\d+)\+?\s*(minutos?|horas?|dias?|semanas?|mês|meses)`),
}

var (
	todayPattern     = regexp.MustCompile(`(?i)\b(today|just posted|just now|heute|aujourd'hui|hoy|hoje)\b`)
	yesterdayPattern = regexp.MustCompile(`(?i)\b(?:yesterday|gestern|ayer|ontem)\b|\bpubli[ée]e?s?\s+hier\b|^\s*hier\s*$`)
)

// PostedDate resolves an absolute or relative posting date to YYYY-MM-DD in UTC.
// Relative phrases are measured back from now.
func PostedDate(raw string, now time.Time) (string, bool) {
	raw = CleanText(raw)
	if raw == "" {
		return "", false
	}
	if t, ok := parseAbsolute(raw); ok {
		return t.UTC().Format(DateLayout), true
	}
	if days, ok := relativeDays(raw); ok {
		return now.UTC().AddDate(0, 0, -days).Format(DateLayout), true
	}
	return "", false
}

// PostedDateFromEpoch handles epoch timestamps some boards embed in markup
// or page state. Values below 1e11 are seconds, larger ones milliseconds.
func PostedDateFromEpoch(v float64) (string, bool) {
	switch {
	case v <= 0:
		return "", false
	case v < 1e11:
		return time.Unix(int64(v), 0).UTC().Format(DateLayout), true
	default:
		return time.UnixMilli(int64(v)).UTC().Format(DateLayout), true
	}
}

func parseAbsolute(val string) (time.Time, bool) {
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func relativeDays(text string) (int, bool) {
	for _, re := range relativePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n * unitDays(m[2]), true
	}
	if yesterdayPattern.MatchString(text) {
		return 1, true
	}
	if todayPattern.MatchString(text) {
		return 0, true
	}
	return 0, false
}

func unitDays(unit string) int {
	u := strings.ToLower(unit)
	switch {
	case strings.HasPrefix(u, "min"),
		strings.HasPrefix(u, "hour"),
		strings.HasPrefix(u, "hr"),
		strings.HasPrefix(u, "stunde"),
		strings.HasPrefix(u, "heure"),
		strings.HasPrefix(u, "hora"):
		return 0
	case strings.HasPrefix(u, "week"),
		strings.HasPrefix(u, "woche"),
		strings.HasPrefix(u, "semaine"),
		strings.HasPrefix(u, "semana"):
		return 7
	case strings.HasPrefix(u, "month"),
		strings.HasPrefix(u, "monat"),
		strings.HasPrefix(u, "mois"),
		strings.HasPrefix(u, "mes"),
		strings.HasPrefix(u, "mês"):
		return 30
	default:
		return 1
	}
}
