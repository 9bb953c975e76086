package scraper

import (
	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
)

// JobPosting is the result of one extraction. Every field is optional; an
// empty string means the field could not be determined.
type JobPosting struct {
	Position        string                    `json:"position,omitempty"`
	Company         string                    `json:"company,omitempty"`
	Location        string                    `json:"location,omitempty"`
	WorkArrangement normalize.WorkArrangement `json:"workArrangement,omitempty"`
	Description     string                    `json:"description,omitempty"`
	Compensation    string                    `json:"compensation,omitempty"`
	PostedDate      string                    `json:"postedDate,omitempty"`
}

func (j JobPosting) IsEmpty() bool {
	return j == JobPosting{}
}

// Extractor knows how to read job postings from one career site.
// Implementations hold no mutable state.
type Extractor interface {
	Name() string
	Matches(address string) bool
	Extract(p *page.Snapshot) JobPosting
}
