package normalize

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Salary is a structured pay range as published in page state or JSON-LD.
type Salary struct {
	Currency string
	Min      *float64
	Max      *float64
	Unit     string
}

var amountPrinter = message.NewPrinter(language.English)

var unitLabels = map[string]string{
	"YEAR":    "year",
	"YEARLY":  "year",
	"ANNUAL":  "year",
	"MONTH":   "month",
	"MONTHLY": "month",
	"WEEK":    "week",
	"WEEKLY":  "week",
	"DAY":     "day",
	"DAILY":   "day",
	"HOUR":    "hour",
	"HOURLY":  "hour",
}

// FormatSalaryRange renders e.g. "USD 120,000 – 150,000 per year". The max
// clause is left out when only one bound is known.
func FormatSalaryRange(s Salary) (string, bool) {
	lo, hi := s.Min, s.Max
	// A zero minimum means "not disclosed" on several boards.
	if lo == nil || *lo <= 0 {
		lo, hi = hi, nil
	}
	if lo == nil || *lo <= 0 {
		return "", false
	}

	var sb strings.Builder
	if cur := strings.ToUpper(strings.TrimSpace(s.Currency)); cur != "" {
		sb.WriteString(cur)
		sb.WriteByte(' ')
	}
	sb.WriteString(formatAmount(*lo))
	if hi != nil && *hi > *lo {
		sb.WriteString(" – ")
		sb.WriteString(formatAmount(*hi))
	}
	if unit := unitLabel(s.Unit); unit != "" {
		sb.WriteString(" per ")
		sb.WriteString(unit)
	}
	return sb.String(), true
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return amountPrinter.Sprintf("%d", int64(v))
	}
	return amountPrinter.Sprintf("%.2f", v)
}

func unitLabel(unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return ""
	}
	key := strings.ToUpper(strings.TrimPrefix(unit, "1 "))
	if label, ok := unitLabels[key]; ok {
		return label
	}
	return strings.ToLower(unit)
}
