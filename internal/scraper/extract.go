package scraper

import (
	"log/slog"
	"strings"

	"github.com/baxromumarov/job-capture/internal/fallback"
	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/observability"
	"github.com/baxromumarov/job-capture/internal/page"
	"github.com/baxromumarov/job-capture/internal/source"
)

type attempt = fallback.Attempt[string]

type arrangementAttempt = fallback.Attempt[normalize.WorkArrangement]

// chains lists the attempts for every field of one site, best source first.
// Description attempts yield raw markup and date attempts raw date text;
// run normalizes both before the validity check.
type chains struct {
	position     []attempt
	company      []attempt
	location     []attempt
	arrangement  []arrangementAttempt
	description  []attempt
	compensation []attempt
	postedDate   []attempt
}

// run evaluates every chain and returns whatever was found. A missing
// snapshot yields nothing. A panic that escapes the per-attempt recovery is
// logged and the partial result returned.
func run(site string, p *page.Snapshot, build func(*page.Snapshot) chains) (job JobPosting) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("extraction failed", "site", site, "url", addressOf(p), "panic", r)
			observability.IncRecovered()
		}
		observability.ObserveExtraction(site, foundFields(job))
	}()

	if p == nil {
		return job
	}
	c := build(p)

	job.Position, _ = fallback.Text(c.position...)
	job.Company, _ = fallback.Text(c.company...)
	job.Location, _ = fallback.Text(c.location...)

	arrangements := append(append([]arrangementAttempt{}, c.arrangement...),
		arrangementFromText(func() (string, bool) { return job.Location, job.Location != "" }),
		employmentArrangement(p),
	)
	job.WorkArrangement, _ = fallback.First(validArrangement, arrangements...)

	job.Description, _ = fallback.Text(mapAttempts(c.description, normalize.Description)...)
	job.Compensation, _ = fallback.Text(c.compensation...)
	job.PostedDate, _ = fallback.Text(mapAttempts(c.postedDate, func(raw string) (string, bool) {
		return normalize.PostedDate(raw, p.CapturedAt)
	})...)
	return job
}

func validArrangement(a normalize.WorkArrangement) bool {
	return a != ""
}

func mapAttempts(in []attempt, convert func(string) (string, bool)) []attempt {
	out := make([]attempt, 0, len(in))
	for _, a := range in {
		a := a
		out = append(out, func() (string, bool) {
			raw, ok := a()
			if !ok {
				return "", false
			}
			return convert(raw)
		})
	}
	return out
}

func foundFields(job JobPosting) []string {
	var out []string
	for name, v := range map[string]string{
		"position":        job.Position,
		"company":         job.Company,
		"location":        job.Location,
		"workArrangement": string(job.WorkArrangement),
		"description":     job.Description,
		"compensation":    job.Compensation,
		"postedDate":      job.PostedDate,
	} {
		if v != "" {
			out = append(out, name)
		}
	}
	return out
}

func addressOf(p *page.Snapshot) string {
	if p == nil {
		return ""
	}
	return p.URL
}

func fromState(p *page.Snapshot, global string, keys ...string) attempt {
	return func() (string, bool) { return source.StateString(p, global, keys...) }
}

func fromText(p *page.Snapshot, selectors ...string) attempt {
	return func() (string, bool) { return source.Text(p, selectors...) }
}

func fromHTML(p *page.Snapshot, selectors ...string) attempt {
	return func() (string, bool) { return source.HTML(p, selectors...) }
}

func fromAttr(p *page.Snapshot, attr string, selectors ...string) attempt {
	return func() (string, bool) { return source.Attr(p, attr, selectors...) }
}

func fromMeta(p *page.Snapshot, keys ...string) attempt {
	return func() (string, bool) { return source.Meta(p, keys...) }
}

// fromPosting reads one JSON-LD JobPosting property, e.g. source.Posting.Title.
func fromPosting(p *page.Snapshot, field func(source.Posting) (string, bool)) attempt {
	return func() (string, bool) {
		jp, ok := source.JobPosting(p)
		if !ok {
			return "", false
		}
		return field(jp)
	}
}

func postingSalary(p *page.Snapshot) attempt {
	return func() (string, bool) {
		jp, ok := source.JobPosting(p)
		if !ok {
			return "", false
		}
		s, ok := jp.Salary()
		if !ok {
			return "", false
		}
		return normalize.FormatSalaryRange(s)
	}
}

// fromCombinedTitle splits the document title, then og:title, after
// removing site branding, and picks one piece.
func fromCombinedTitle(p *page.Snapshot, pick func(normalize.CombinedTitle) string, suffixes ...string) attempt {
	return func() (string, bool) {
		for _, read := range []attempt{
			func() (string, bool) { return source.DocumentTitle(p) },
			func() (string, bool) { return source.Meta(p, "og:title", "twitter:title") },
		} {
			raw, ok := read()
			if !ok {
				continue
			}
			if v := pick(normalize.SplitCombinedTitle(normalize.StripSiteSuffix(raw, suffixes...))); v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// fromHiringTitle reads the "Acme hiring X in Y" og:title form.
func fromHiringTitle(p *page.Snapshot, pick func(normalize.CombinedTitle) string, suffixes ...string) attempt {
	return func() (string, bool) {
		raw, ok := source.Meta(p, "og:title", "twitter:title")
		if !ok {
			return "", false
		}
		parts, ok := normalize.SplitHiringTitle(normalize.StripSiteSuffix(raw, suffixes...))
		if !ok {
			return "", false
		}
		v := pick(parts)
		return v, v != ""
	}
}

func position(c normalize.CombinedTitle) string { return c.Position }
func company(c normalize.CombinedTitle) string  { return c.Company }
func location(c normalize.CombinedTitle) string { return c.Location }

func arrangementFromText(read attempt) arrangementAttempt {
	return func() (normalize.WorkArrangement, bool) {
		text, ok := read()
		if !ok {
			return "", false
		}
		return normalize.WorkArrangementOf(text)
	}
}

func remoteFlag(p *page.Snapshot, global string, keys ...string) arrangementAttempt {
	return func() (normalize.WorkArrangement, bool) {
		remote, ok := source.StateBool(p, global, keys...)
		if !ok {
			return "", false
		}
		return normalize.WorkArrangementFromRemoteFlag(remote)
	}
}

func postingTelecommute(p *page.Snapshot) arrangementAttempt {
	return func() (normalize.WorkArrangement, bool) {
		jp, ok := source.JobPosting(p)
		if !ok {
			return "", false
		}
		return normalize.WorkArrangementFromRemoteFlag(jp.IsTelecommute())
	}
}

// employmentArrangement only yields Freelance; full-time types say nothing
// about where the work happens.
func employmentArrangement(p *page.Snapshot) arrangementAttempt {
	return func() (normalize.WorkArrangement, bool) {
		jp, ok := source.JobPosting(p)
		if !ok {
			return "", false
		}
		kind, ok := jp.EmploymentType()
		if !ok {
			return "", false
		}
		if a, ok := normalize.WorkArrangementOf(kind); ok && a == normalize.Freelance {
			return a, true
		}
		return "", false
	}
}

func always(a normalize.WorkArrangement) arrangementAttempt {
	return func() (normalize.WorkArrangement, bool) { return a, true }
}

// salaryFromState synthesizes a range from numeric bounds under one state object.
func salaryFromState(p *page.Snapshot, global string, base []string, minKey, maxKey, currencyKey, unitKey string) attempt {
	return func() (string, bool) {
		obj, ok := source.State(p, global, base...)
		if !ok {
			return "", false
		}
		var s normalize.Salary
		if v, ok := source.Path(obj, minKey); ok {
			if f, ok := source.Number(v); ok {
				s.Min = &f
			}
		}
		if v, ok := source.Path(obj, maxKey); ok {
			if f, ok := source.Number(v); ok {
				s.Max = &f
			}
		}
		if v, ok := source.Path(obj, currencyKey); ok {
			s.Currency, _ = source.String(v)
		}
		if v, ok := source.Path(obj, unitKey); ok {
			s.Unit, _ = source.String(v)
		}
		return normalize.FormatSalaryRange(s)
	}
}

// clonePath copies a base path so callers can append keys to it safely.
func clonePath(base []string) []string {
	return append(make([]string, 0, len(base)+2), base...)
}

func trimPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimSpace(s[len(prefix):])
	}
	return s
}
