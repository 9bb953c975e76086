package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostedDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"rfc3339", "2026-02-01T09:00:00Z", "2026-02-01", true},
		{"rfc3339 offset reduced to UTC", "2026-02-01T23:30:00-05:00", "2026-02-02", true},
		{"date only", "2026-01-20", "2026-01-20", true},
		{"datetime without zone", "2026-01-20T08:00:00.000", "2026-01-20", true},
		{"long month", "January 5, 2026", "2026-01-05", true},
		{"posted days ago", "Posted 5 days ago", "2026-03-10", true},
		{"one day ago", "1 day ago", "2026-03-14", true},
		{"weeks", "Posted 2 weeks ago", "2026-03-01", true},
		{"months", "1 month ago", "2026-02-13", true},
		{"hours means today", "3 hours ago", "2026-03-15", true},
		{"plus suffix", "Posted 30+ Days Ago", "2026-02-13", true},
		{"german", "vor 2 Tagen", "2026-03-13", true},
		{"german singular", "vor 1 Tag", "2026-03-14", true},
		{"german weeks", "vor 1 Woche", "2026-03-08", true},
		{"french", "il y a 3 jours", "2026-03-12", true},
		{"spanish weeks", "hace 1 semana", "2026-03-08", true},
		{"portuguese", "há 4 dias", "2026-03-11", true},
		{"today", "Posted Today", "2026-03-15", true},
		{"yesterday", "Posted Yesterday", "2026-03-14", true},
		{"french yesterday", "Publié hier", "2026-03-14", true},
		{"bare french yesterday", "Hier", "2026-03-14", true},
		{"german hier is not a date", "Jetzt hier bewerben", "", false},
		{"german hier in sentence", "Arbeiten Sie hier mit uns", "", false},
		{"garbage", "sometime soon", "", false},
		{"bad absolute", "2026-13-45", "", false},
		{"empty", "  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PostedDate(tt.raw, now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostedDateUsesUTCDayOfNow(t *testing.T) {
	// 01:00 in UTC+3 is still the previous day in UTC.
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 3, 15, 1, 0, 0, 0, loc)
	got, ok := PostedDate("Posted 5 days ago", now)
	assert.True(t, ok)
	assert.Equal(t, "2026-03-09", got)
}

func TestPostedDateFromEpoch(t *testing.T) {
	for _, v := range []float64{1767225600000, 1767225600} { // 2026-01-01T00:00:00Z
		got, ok := PostedDateFromEpoch(v)
		assert.True(t, ok)
		assert.Equal(t, "2026-01-01", got)
	}

	_, ok := PostedDateFromEpoch(0)
	assert.False(t, ok)
}
