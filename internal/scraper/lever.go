package scraper

import (
	"strings"

	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

type Lever struct{}

func (Lever) Name() string { return "Lever" }

func (Lever) Matches(address string) bool {
	return urlutil.HostMatches(address, "lever.co")
}

func (l Lever) Extract(p *page.Snapshot) JobPosting {
	return run(l.Name(), p, leverChains)
}

func leverChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			fromPosting(p, source.Posting.Title),
			fromText(p, ".posting-headline h2", ".posting-header h2"),
			leverTitle(p, false),
		},
		company: []attempt{
			fromPosting(p, source.Posting.Company),
			fromAttr(p, "alt", ".main-header-logo img"),
			leverTitle(p, true),
		},
		location: []attempt{
			fromPosting(p, source.Posting.Location),
			fromText(p, ".posting-categories .location", ".posting-category.location"),
		},
		arrangement: []arrangementAttempt{
			arrangementFromText(fromText(p, ".posting-categories .workplaceTypes")),
			postingTelecommute(p),
			arrangementFromText(fromText(p, ".posting-categories .commitment")),
		},
		description: []attempt{
			fromPosting(p, source.Posting.Description),
			fromHTML(p, "[data-qa='job-description']", ".posting-page .section-wrapper.page-full-width"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			postingSalary(p),
			fromText(p, "[data-qa='salary-range']", ".posting-salary"),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
		},
	}
}

// leverTitle reads the "<company> - <position>" document title Lever uses.
func leverTitle(p *page.Snapshot, wantCompany bool) attempt {
	return func() (string, bool) {
		raw, ok := source.DocumentTitle(p)
		if !ok {
			return "", false
		}
		head, tail, found := strings.Cut(raw, " - ")
		if !found {
			return "", false
		}
		v := strings.TrimSpace(tail)
		if wantCompany {
			v = strings.TrimSpace(head)
		}
		return v, v != ""
	}
}
