package scraper

import (
	"fmt"
	"strings"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// Glassdoor is a Next.js app; the job view sits in __NEXT_DATA__.
type Glassdoor struct{}

const (
	glassdoorState  = "__NEXT_DATA__"
	glassdoorSuffix = " | Glassdoor"
)

var (
	glassdoorHeader = []string{"props", "pageProps", "jobListing", "jobview", "header"}
	glassdoorJob    = []string{"props", "pageProps", "jobListing", "jobview", "job"}
)

func (Glassdoor) Name() string { return "Glassdoor" }

func (Glassdoor) Matches(address string) bool {
	return urlutil.HostHasLabel(address, "glassdoor")
}

func (g Glassdoor) Extract(p *page.Snapshot) JobPosting {
	return run(g.Name(), p, glassdoorChains)
}

func glassdoorChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			glassdoorModel(p, glassdoorHeader, "jobTitleText"),
			glassdoorModel(p, glassdoorJob, "jobTitleText"),
			fromPosting(p, source.Posting.Title),
			fromText(p, "[data-test='job-title']", "[id^='jd-job-title']", "h1"),
			fromHiringTitle(p, position, glassdoorSuffix),
		},
		company: []attempt{
			glassdoorModel(p, glassdoorHeader, "employerNameFromSearch"),
			glassdoorModel(p, glassdoorHeader, "employer", "name"),
			fromPosting(p, source.Posting.Company),
			fromText(p, "[data-test='employer-name']", "[class*='EmployerProfile_employerName']"),
			fromHiringTitle(p, company, glassdoorSuffix),
		},
		location: []attempt{
			glassdoorModel(p, glassdoorHeader, "locationName"),
			fromPosting(p, source.Posting.Location),
			fromText(p, "[data-test='location']"),
			fromHiringTitle(p, location, glassdoorSuffix),
		},
		arrangement: []arrangementAttempt{
			arrangementFromText(glassdoorRemoteType(p)),
			postingTelecommute(p),
		},
		description: []attempt{
			glassdoorModel(p, glassdoorJob, "description"),
			fromPosting(p, source.Posting.Description),
			fromHTML(p, "[class*='JobDetails_jobDescription']", "#JobDescriptionContainer", ".jobDescriptionContent"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			glassdoorPay(p),
			postingSalary(p),
			fromText(p, "[data-test='detailSalary']", "[class*='SalaryEstimate_salaryRange']"),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
			glassdoorAge(p),
		},
	}
}

func glassdoorModel(p *page.Snapshot, base []string, keys ...string) attempt {
	return fromState(p, glassdoorState, append(clonePath(base), keys...)...)
}

// glassdoorRemoteType reads enum values such as WORK_FROM_HOME as words.
func glassdoorRemoteType(p *page.Snapshot) attempt {
	return func() (string, bool) {
		v, ok := glassdoorModel(p, glassdoorHeader, "remoteWorkTypes", "0")()
		return strings.ReplaceAll(v, "_", " "), ok
	}
}

// glassdoorPay formats the 10th to 90th percentile estimate.
func glassdoorPay(p *page.Snapshot) attempt {
	return func() (string, bool) {
		header, ok := source.State(p, glassdoorState, glassdoorHeader...)
		if !ok {
			return "", false
		}
		var s normalize.Salary
		if v, ok := source.Path(header, "payPeriodAdjustedPay", "p10"); ok {
			if f, ok := source.Number(v); ok {
				s.Min = &f
			}
		}
		if v, ok := source.Path(header, "payPeriodAdjustedPay", "p90"); ok {
			if f, ok := source.Number(v); ok {
				s.Max = &f
			}
		}
		if v, ok := source.Path(header, "payCurrency"); ok {
			s.Currency, _ = source.String(v)
		}
		if v, ok := source.Path(header, "payPeriod"); ok {
			s.Unit, _ = source.String(v)
		}
		return normalize.FormatSalaryRange(s)
	}
}

// glassdoorAge turns ageInDays into a relative phrase for the date normalizer.
func glassdoorAge(p *page.Snapshot) attempt {
	return func() (string, bool) {
		days, ok := source.StateNumber(p, glassdoorState, append(clonePath(glassdoorHeader), "ageInDays")...)
		if !ok || days < 0 {
			return "", false
		}
		return fmt.Sprintf("%d days ago", int(days)), true
	}
}
