package scraper

import (
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// Ashby boards render from window.__appData, which carries the full posting.
type Ashby struct{}

const ashbyState = "__appData"

func (Ashby) Name() string { return "Ashby" }

func (Ashby) Matches(address string) bool {
	return urlutil.HostMatches(address, "ashbyhq.com")
}

func (a Ashby) Extract(p *page.Snapshot) JobPosting {
	return run(a.Name(), p, ashbyChains)
}

func ashbyChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			fromState(p, ashbyState, "posting", "title"),
			fromPosting(p, source.Posting.Title),
			fromText(p, "h1.ashby-job-posting-heading", "h1"),
			fromCombinedTitle(p, position),
		},
		company: []attempt{
			fromState(p, ashbyState, "organization", "name"),
			fromPosting(p, source.Posting.Company),
			fromCombinedTitle(p, company),
			fromMeta(p, "og:site_name"),
		},
		location: []attempt{
			fromState(p, ashbyState, "posting", "locationName"),
			fromPosting(p, source.Posting.Location),
			fromText(p, ".ashby-job-posting-left-pane [class*='location']"),
		},
		arrangement: []arrangementAttempt{
			remoteFlag(p, ashbyState, "posting", "isRemote"),
			arrangementFromText(fromState(p, ashbyState, "posting", "workplaceType")),
			postingTelecommute(p),
		},
		description: []attempt{
			fromState(p, ashbyState, "posting", "descriptionHtml"),
			fromState(p, ashbyState, "posting", "descriptionPlainText"),
			fromPosting(p, source.Posting.Description),
			fromHTML(p, ".ashby-job-posting-description", "[class*='descriptionText']"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			fromState(p, ashbyState, "posting", "compensationTierSummary"),
			fromState(p, ashbyState, "posting", "compensation", "compensationTierSummary"),
			fromState(p, ashbyState, "posting", "compensation", "compensationTiers", "0", "tierSummary"),
			fromState(p, ashbyState, "posting", "scrapeableCompensationSalarySummary"),
			postingSalary(p),
		},
		postedDate: []attempt{
			fromState(p, ashbyState, "posting", "publishedDate"),
			fromPosting(p, source.Posting.DatePosted),
		},
	}
}

