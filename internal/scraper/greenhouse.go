package scraper

import (
	"html"
	"strings"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// Greenhouse covers the classic boards and the newer Remix job-boards app,
// whose route loader data holds the posting.
type Greenhouse struct{}

const greenhouseState = "__remixContext"

var greenhouseJobPost = []string{"state", "loaderData", "routes/$url_token_.jobs_.$job_post_id", "jobPost"}

func (Greenhouse) Name() string { return "Greenhouse" }

func (Greenhouse) Matches(address string) bool {
	return urlutil.HostMatches(address, "greenhouse.io") ||
		urlutil.PathContains(address, "gh_jid=")
}

func (g Greenhouse) Extract(p *page.Snapshot) JobPosting {
	return run(g.Name(), p, greenhouseChains)
}

func greenhouseChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			greenhousePost(p, "title"),
			fromPosting(p, source.Posting.Title),
			fromText(p, ".job__title h1", ".app-title", "h1.section-header", "h1"),
			greenhouseTitle(p, position),
			fromMeta(p, "og:title"),
		},
		company: []attempt{
			greenhousePost(p, "company_name"),
			fromPosting(p, source.Posting.Company),
			greenhouseCompanyText(p),
			greenhouseTitle(p, company),
			fromMeta(p, "og:site_name"),
		},
		location: []attempt{
			greenhousePost(p, "job_post_location"),
			fromPosting(p, source.Posting.Location),
			fromText(p, ".job__location", ".location"),
		},
		arrangement: []arrangementAttempt{
			postingTelecommute(p),
		},
		description: []attempt{
			greenhouseContent(p),
			fromPosting(p, source.Posting.Description),
			fromHTML(p, ".job__description", "#content", ".job-post-content"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			greenhousePayRange(p),
			postingSalary(p),
			fromText(p, ".pay-range", ".pay-input", ".job__pay-ranges"),
		},
		postedDate: []attempt{
			greenhousePost(p, "published_at"),
			fromPosting(p, source.Posting.DatePosted),
		},
	}
}

func greenhousePost(p *page.Snapshot, key string) attempt {
	return fromState(p, greenhouseState, append(clonePath(greenhouseJobPost), key)...)
}

// greenhouseContent unescapes the job post body, which the loader data
// carries as entity-encoded markup.
func greenhouseContent(p *page.Snapshot) attempt {
	return func() (string, bool) {
		v, ok := greenhousePost(p, "content")()
		if !ok {
			return "", false
		}
		return html.UnescapeString(v), true
	}
}

func greenhouseCompanyText(p *page.Snapshot) attempt {
	return func() (string, bool) {
		v, ok := source.Text(p, ".company-name")
		if !ok {
			return "", false
		}
		v = trimPrefixFold(v, "at ")
		return v, v != ""
	}
}

// greenhouseTitle reads "Job Application for <position> at <company>".
func greenhouseTitle(p *page.Snapshot, pick func(normalize.CombinedTitle) string) attempt {
	return func() (string, bool) {
		raw, ok := source.DocumentTitle(p)
		if !ok {
			return "", false
		}
		raw = trimPrefixFold(raw, "Job Application for ")
		v := pick(normalize.SplitCombinedTitle(raw))
		return v, v != ""
	}
}

// greenhousePayRange uses the first pay range tier. Bounds are either
// numbers or display strings like "$140,000".
func greenhousePayRange(p *page.Snapshot) attempt {
	return func() (string, bool) {
		tier, ok := source.State(p, greenhouseState, append(clonePath(greenhouseJobPost), "pay_ranges", "0")...)
		if !ok {
			return "", false
		}
		currency := ""
		if v, ok := source.Path(tier, "currency_type"); ok {
			currency, _ = source.String(v)
		}
		minRaw, _ := source.Path(tier, "min")
		maxRaw, _ := source.Path(tier, "max")

		lo, loOK := source.Number(minRaw)
		hi, hiOK := source.Number(maxRaw)
		if loOK {
			s := normalize.Salary{Currency: currency, Min: &lo}
			if hiOK {
				s.Max = &hi
			}
			return normalize.FormatSalaryRange(s)
		}

		minText, _ := source.String(minRaw)
		maxText, _ := source.String(maxRaw)
		text := minText
		if maxText != "" && maxText != minText {
			if text != "" {
				text += " – "
			}
			text += maxText
		}
		if text == "" {
			return "", false
		}
		if currency != "" && !strings.Contains(text, currency) {
			text += " " + currency
		}
		return text, true
	}
}
