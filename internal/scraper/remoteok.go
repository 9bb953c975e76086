package scraper

import (
	"strconv"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// RemoteOK job pages reuse the board's job row markup with itemprop
// attributes, next to a JSON-LD block.
type RemoteOK struct{}

const remoteOKSuffix = " | Remote OK"

func (RemoteOK) Name() string { return "RemoteOK" }

func (RemoteOK) Matches(address string) bool {
	return urlutil.HostMatches(address, "remoteok.com", "remoteok.io")
}

func (r RemoteOK) Extract(p *page.Snapshot) JobPosting {
	return run(r.Name(), p, remoteOKChains)
}

func remoteOKChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			fromPosting(p, source.Posting.Title),
			fromText(p, "tr.job h2[itemprop='title']", "h2[itemprop='title']", "h1"),
			fromCombinedTitle(p, position, remoteOKSuffix),
		},
		company: []attempt{
			fromPosting(p, source.Posting.Company),
			fromText(p, "tr.job h3[itemprop='name']", "h3[itemprop='name']"),
			fromAttr(p, "data-company", "tr.job"),
			fromCombinedTitle(p, company, remoteOKSuffix),
		},
		location: []attempt{
			fromPosting(p, source.Posting.ApplicantLocation),
			fromPosting(p, source.Posting.Location),
			fromText(p, "tr.job .location"),
		},
		arrangement: []arrangementAttempt{
			always(normalize.Remote),
		},
		description: []attempt{
			fromPosting(p, source.Posting.Description),
			fromHTML(p, "tr.expand .description", ".description .markdown", "[itemprop='description']"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			postingSalary(p),
			fromText(p, "tr.job .salary"),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
			fromAttr(p, "datetime", "tr.job time[datetime]", "time[datetime]"),
			remoteOKEpoch(p),
		},
	}
}

// remoteOKEpoch reads the unix seconds RemoteOK puts on each job row.
func remoteOKEpoch(p *page.Snapshot) attempt {
	return func() (string, bool) {
		raw, ok := source.Attr(p, "data-epoch", "tr.job")
		if !ok {
			return "", false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", false
		}
		return normalize.PostedDateFromEpoch(v)
	}
}
