package scraper

import (
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
	"github.com/baxromumarov/job-capture/internal/urlutil"
)

// LinkedIn handles both the signed-in job view (unified top card) and the
// public guest page (top-card layout plus JSON-LD).
type LinkedIn struct{}

const linkedInSuffix = " | LinkedIn"

func (LinkedIn) Name() string { return "LinkedIn" }

func (LinkedIn) Matches(address string) bool {
	return urlutil.HostMatches(address, "linkedin.com") && urlutil.PathContains(address, "/jobs")
}

func (l LinkedIn) Extract(p *page.Snapshot) JobPosting {
	return run(l.Name(), p, linkedInChains)
}

func linkedInChains(p *page.Snapshot) chains {
	return chains{
		position: []attempt{
			fromPosting(p, source.Posting.Title),
			fromText(p,
				".job-details-jobs-unified-top-card__job-title",
				".jobs-unified-top-card__job-title",
				".top-card-layout__title",
				".topcard__title",
				"h1",
			),
			fromHiringTitle(p, position, linkedInSuffix),
			fromCombinedTitle(p, position, linkedInSuffix),
		},
		company: []attempt{
			fromPosting(p, source.Posting.Company),
			fromText(p,
				".job-details-jobs-unified-top-card__company-name",
				".jobs-unified-top-card__company-name",
				".topcard__org-name-link",
				".top-card-layout__second-subline .topcard__flavor a",
			),
			fromHiringTitle(p, company, linkedInSuffix),
			fromCombinedTitle(p, company, linkedInSuffix),
		},
		location: []attempt{
			fromPosting(p, source.Posting.Location),
			fromText(p,
				".job-details-jobs-unified-top-card__bullet",
				".jobs-unified-top-card__bullet",
				".topcard__flavor--bullet",
			),
			fromHiringTitle(p, location, linkedInSuffix),
		},
		arrangement: []arrangementAttempt{
			arrangementFromText(fromText(p,
				".job-details-jobs-unified-top-card__workplace-type",
				".jobs-unified-top-card__workplace-type",
				".job-details-preferences-and-skills__pill",
			)),
			postingTelecommute(p),
		},
		description: []attempt{
			fromHTML(p,
				"[data-testid='expandable-text-box']",
				".jobs-description__content",
				"#job-details",
				".show-more-less-html__markup",
				".description__text",
			),
			fromPosting(p, source.Posting.Description),
			fromMeta(p, "og:description", "description"),
		},
		compensation: []attempt{
			postingSalary(p),
			fromText(p, ".compensation__salary", ".salary.compensation__salary"),
		},
		postedDate: []attempt{
			fromPosting(p, source.Posting.DatePosted),
			fromText(p,
				".posted-time-ago__text",
				".jobs-unified-top-card__posted-date",
				".job-details-jobs-unified-top-card__primary-description-container .tvm__text--positive",
			),
		},
	}
}
