package scraper

import (
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// Indeed runs on many country hosts (indeed.com, de.indeed.com,
// indeed.co.uk ...), so ownership is by host label.
type Indeed struct{}

const indeedState = "_initialData"

var (
	indeedJobInfo = []string{"jobInfoWrapperModel", "jobInfoModel"}
	indeedHeader  = []string{"jobInfoWrapperModel", "jobInfoModel", "jobInfoHeaderModel"}
)

func (Indeed) Name() string { return "Indeed" }

func (Indeed) Matches(address string) bool {
	return urlutil.HostHasLabel(address, "indeed")
}

func (i Indeed) Extract(p *page.Snapshot) JobPosting {
	return run(i.Name(), p, indeedChains)
}

func indeedChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			indeedModel(p, indeedHeader, "jobTitle"),
			fromPosting(p, source.Posting.Title),
			fromText(p,
				"[data-testid='jobsearch-JobInfoHeader-title']",
				"h1.jobsearch-JobInfoHeader-title",
				"h2.jobTitle",
				"h1",
			),
			fromCombinedTitle(p, position, " - Indeed.com", " | Indeed.com"),
		},
		company: []attempt{
			indeedModel(p, indeedHeader, "companyName"),
			fromPosting(p, source.Posting.Company),
			fromText(p,
				"[data-testid='inlineHeader-companyName']",
				"[data-company-name='true']",
				"[data-testid='company-name']",
				".companyName",
			),
			fromMeta(p, "og:site_name"),
		},
		location: []attempt{
			indeedModel(p, indeedHeader, "formattedLocation"),
			fromPosting(p, source.Posting.Location),
			fromText(p,
				"[data-testid='inlineHeader-companyLocation']",
				"[data-testid='job-location']",
				".companyLocation",
			),
		},
		arrangement: []arrangementAttempt{
			remoteFlag(p, indeedState, append(clonePath(indeedHeader), "remoteLocation")...),
			arrangementFromText(indeedModel(p, indeedHeader, "remoteWorkModel", "text")),
			postingTelecommute(p),
		},
		description: []attempt{
			indeedModel(p, indeedJobInfo, "sanitizedJobDescription", "content"),
			indeedModel(p, indeedJobInfo, "sanitizedJobDescription"),
			fromPosting(p, source.Posting.Description),
			fromHTML(p, "#jobDescriptionText", ".jobsearch-jobDescriptionText"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			fromState(p, indeedState, "salaryInfoModel", "salaryText"),
			salaryFromState(p, indeedState, []string{"salaryInfoModel"}, "salaryMin", "salaryMax", "salaryCurrency", "salaryType"),
			postingSalary(p),
			fromText(p,
				"#salaryInfoAndJobType .css-19j1a75",
				"#salaryInfoAndJobType span",
				"[data-testid='attribute_snippet_testid']",
				".salary-snippet-container",
			),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
			fromState(p, indeedState, "hiringInsightsModel", "age"),
			fromText(p,
				"[data-testid='myJobsStateDate']",
				".jobsearch-JobMetadataFooter span",
				".date",
			),
		},
	}
}

// indeedModel reads a key below one of the nested Indeed models.
func indeedModel(p *page.Snapshot, base []string, keys ...string) attempt {
	return fromState(p, indeedState, append(clonePath(base), keys...)...)
}
