package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkArrangementOf(t *testing.T) {
	tests := []struct {
		text string
		want WorkArrangement
		ok   bool
	}{
		{"Remote", Remote, true},
		{"Fully remote (US)", Remote, true},
		{"Hybrid", Hybrid, true},
		{"Remote / Hybrid", Hybrid, true},
		{"Hybrid remote", Hybrid, true},
		{"On-site", OnSite, true},
		{"Onsite - Austin, TX", OnSite, true},
		{"In office", OnSite, true},
		{"Contract", Freelance, true},
		{"Freelance designer", Freelance, true},
		{"Télétravail", Remote, true},
		{"Homeoffice möglich", Remote, true},
		{"Híbrido", Hybrid, true},
		{"Presencial", OnSite, true},
		{"Berlin, Germany", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := WorkArrangementOf(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkArrangementFromRemoteFlag(t *testing.T) {
	got, ok := WorkArrangementFromRemoteFlag(true)
	assert.True(t, ok)
	assert.Equal(t, Remote, got)

	_, ok = WorkArrangementFromRemoteFlag(false)
	assert.False(t, ok)
}
