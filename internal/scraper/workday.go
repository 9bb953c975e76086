package scraper

import (
	"regexp"

	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Workday job pages are rendered client side; the stable hooks are the
// data-automation-id attributes and the JSON-LD block.
type Workday struct{}

var (
	tenantCaser = cases.Title(language.English)
	// wd1, wd3, wd103 and friends are data center pods, not tenants.
	workdayPod = regexp.MustCompile(`^wd\d+$`)
)

func (Workday) Name() string { return "Workday" }

func (Workday) Matches(address string) bool {
	return urlutil.HostMatches(address, "myworkdayjobs.com", "myworkdaysite.com", "workdayjobs.com")
}

func (w Workday) Extract(p *page.Snapshot) JobPosting {
	return run(w.Name(), p, workdayChains)
}

func workdayChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			fromPosting(p, source.Posting.Title),
			fromText(p, "[data-automation-id='jobPostingHeader']", "h2", "h1"),
			fromMeta(p, "og:title"),
		},
		company: []attempt{
			fromPosting(p, source.Posting.Company),
			fromMeta(p, "og:site_name"),
			workdayTenant(p),
		},
		location: []attempt{
			fromPosting(p, source.Posting.Location),
			fromText(p, "[data-automation-id='locations'] dd", "[data-automation-id='locations']"),
		},
		arrangement: []arrangementAttempt{
			arrangementFromText(fromText(p, "[data-automation-id='remoteType'] dd", "[data-automation-id='remoteType']")),
			postingTelecommute(p),
			arrangementFromText(fromText(p, "[data-automation-id='time'] dd")),
		},
		description: []attempt{
			fromPosting(p, source.Posting.Description),
			fromHTML(p, "[data-automation-id='jobPostingDescription']", ".job-description"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			postingSalary(p),
			fromText(p, "[data-automation-id='payRange'] dd"),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
			fromText(p, "[data-automation-id='postedOn'] dd", "[data-automation-id='postedOn']"),
		},
	}
}

// workdayTenant falls back to the tenant host label, e.g. "acme" in
// acme.wd5.myworkdayjobs.com.
func workdayTenant(p *page.Snapshot) attempt {
	return func() (string, bool) {
		tenant := urlutil.FirstLabel(p.URL)
		if tenant == "" || workdayPod.MatchString(tenant) {
			return "", false
		}
		return tenantCaser.String(tenant), true
	}
}
