package scraper

import (
	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// WeWorkRemotely lists remote roles only, so the arrangement never needs a source.
type WeWorkRemotely struct{}

const wwrSuffix = " | We Work Remotely"

func (WeWorkRemotely) Name() string { return "WeWorkRemotely" }

func (WeWorkRemotely) Matches(address string) bool {
	return urlutil.HostMatches(address, "weworkremotely.com")
}

func (w WeWorkRemotely) Extract(p *page.Snapshot) JobPosting {
	return run(w.Name(), p, wwrChains)
}

func wwrChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			fromPosting(p, source.Posting.Title),
			fromText(p,
				".lis-container__header__hero__company-info__title",
				".listing-header-container h1",
				"h1",
			),
			fromCombinedTitle(p, position, wwrSuffix),
		},
		company: []attempt{
			fromPosting(p, source.Posting.Company),
			fromText(p,
				".lis-container__job__sidebar__companyDetails__info__title h3",
				".company-card h2",
				".listing-header-container .company",
			),
			fromCombinedTitle(p, company, wwrSuffix),
		},
		location: []attempt{
			fromPosting(p, source.Posting.ApplicantLocation),
			fromPosting(p, source.Posting.Location),
			fromText(p, ".lis-container__job__sidebar__job-about__list__item--region span", ".listing-header-container .region"),
		},
		arrangement: []arrangementAttempt{
			always(normalize.Remote),
		},
		description: []attempt{
			fromPosting(p, source.Posting.Description),
			fromHTML(p, ".lis-container__job__content__description", ".listing-container", "#job-listing-show-container"),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			postingSalary(p),
			fromText(p, ".lis-container__job__sidebar__job-about__list__item--salary span"),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
			fromAttr(p, "datetime", ".listing-header-container time", "time[datetime]"),
			fromText(p, ".lis-container__job__sidebar__job-about__list__item--posted span"),
		},
	}
}
