package scraper

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/observability"
	"github.com/baxromumarov/job-capture/internal/page"
)

var capturedAt = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

const jobDescription = "We are looking for an engineer to design, build and operate the services that power our hiring platform for thousands of customers."

func mustSnapshot(t *testing.T, address, markup string) *page.Snapshot {
	t.Helper()
	p, err := page.FromHTML(address, []byte(markup), capturedAt)
	require.NoError(t, err)
	return p
}

// stateScript renders `window.<name> = <json>;` the way boards inline state.
func stateScript(t *testing.T, name string, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return "<script>window." + name + " = " + string(b) + ";</script>"
}

func ldScript(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return `<script type="application/ld+json">` + string(b) + `</script>`
}

func statePage(globals map[string]any) *page.Snapshot {
	return page.New("https://jobs.ashbyhq.com/acme/1", nil, globals, capturedAt)
}

func TestExtractNeverPanics(t *testing.T) {
	hostile := map[string]any{
		"__appData":      "not an object",
		"__remixContext": []any{1, 2, 3},
		"_initialData":   map[string]any{"jobInfoWrapperModel": 5},
		"__NEXT_DATA__":  map[string]any{"props": []any{}},
	}
	junk := `<html><head><title></title><script type="application/ld+json">{"@type":"JobPosting","baseSalary":[],"jobLocation":7,"hiringOrganization":[]}</script></head><body><h1></h1></body></html>`

	for _, e := range Default().extractors {
		e := e
		t.Run(e.Name(), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.True(t, e.Extract(nil).IsEmpty())
			})
			assert.NotPanics(t, func() {
				e.Extract(page.New("https://example.com", nil, hostile, capturedAt))
			})
			assert.NotPanics(t, func() {
				e.Extract(mustSnapshot(t, "https://example.com", junk))
			})
		})
	}
}

func TestStateOnlyExtractionRecoversNothing(t *testing.T) {
	p := statePage(map[string]any{
		"__appData": map[string]any{
			"organization": map[string]any{"name": "Acme"},
			"posting":      map[string]any{"title": "Platform Engineer"},
		},
	})

	before := observability.Snapshot().Recovered
	job := Ashby{}.Extract(p)

	assert.Equal(t, before, observability.Snapshot().Recovered, "DOM fallbacks should miss cleanly")
	assert.Equal(t, "Platform Engineer", job.Position)
	assert.Equal(t, "Acme", job.Company)
	assert.Empty(t, job.Description)
}

func TestDescriptionLengthThroughExtraction(t *testing.T) {
	extract := func(text string) JobPosting {
		return Ashby{}.Extract(statePage(map[string]any{
			"__appData": map[string]any{"posting": map[string]any{"descriptionPlainText": text}},
		}))
	}

	t.Run("exactly the plain text up to 1000", func(t *testing.T) {
		for _, n := range []int{101, 640, normalize.MaxDescriptionLength} {
			text := strings.Repeat("d", n)
			assert.Equal(t, text, extract(text).Description, "length %d", n)
		}
	})

	t.Run("1003 with ellipsis above 1000", func(t *testing.T) {
		got := extract(strings.Repeat("d", 2500)).Description
		assert.Equal(t, 1003, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("unset at 100 or fewer", func(t *testing.T) {
		assert.Empty(t, extract(strings.Repeat("d", 100)).Description)
		assert.Empty(t, extract("Apply now").Description)
	})

	t.Run("short state text falls through to next source", func(t *testing.T) {
		p := mustSnapshot(t, "https://jobs.ashbyhq.com/acme/1",
			"<html><head>"+stateScript(t, "__appData", map[string]any{
				"posting": map[string]any{"descriptionHtml": "<p>Apply now</p>"},
			})+`</head><body><div class="ashby-job-posting-description"><p>`+jobDescription+`</p></div></body></html>`)
		assert.Equal(t, jobDescription, Ashby{}.Extract(p).Description)
	})
}

func TestAshbyStateWinsOverStructuredData(t *testing.T) {
	markup := "<html><head><title>Other Title - Other Co</title>" +
		ldScript(t, map[string]any{
			"@type":              "JobPosting",
			"title":              "Structured Title",
			"hiringOrganization": map[string]any{"name": "Structured Org"},
			"jobLocationType":    "TELECOMMUTE",
		}) +
		stateScript(t, "__appData", map[string]any{
			"posting": map[string]any{
				"title":         "Senior Fullstack Engineer",
				"workplaceType": "Hybrid",
			},
		}) +
		"</head><body></body></html>"

	job := Ashby{}.Extract(mustSnapshot(t, "https://jobs.ashbyhq.com/acme/1", markup))
	assert.Equal(t, "Senior Fullstack Engineer", job.Position)
	assert.Equal(t, normalize.Hybrid, job.WorkArrangement)
}

func TestStructuredSalaryMinimumOnly(t *testing.T) {
	markup := "<html><head>" + ldScript(t, map[string]any{
		"@type": "JobPosting",
		"title": "Platform Engineer",
		"baseSalary": map[string]any{
			"currency": "USD",
			"value":    map[string]any{"minValue": 120000, "unitText": "YEAR"},
		},
	}) + "</head><body></body></html>"

	job := Lever{}.Extract(mustSnapshot(t, "https://jobs.lever.co/acme/1", markup))
	assert.Contains(t, job.Compensation, "USD")
	assert.Contains(t, job.Compensation, "120,000")
	assert.NotContains(t, job.Compensation, "–")
	assert.Equal(t, "USD 120,000 per year", job.Compensation)
}

func TestRelativePostedDate(t *testing.T) {
	markup := `<html><body><h1 class="top-card-layout__title">Backend Engineer</h1>
<span class="posted-time-ago__text">Posted 5 days ago</span></body></html>`

	job := LinkedIn{}.Extract(mustSnapshot(t, "https://www.linkedin.com/jobs/view/123", markup))
	assert.Equal(t, capturedAt.AddDate(0, 0, -5).Format("2006-01-02"), job.PostedDate)
	assert.Equal(t, "2026-03-10", job.PostedDate)
}

func TestUnparseableDateIsUnset(t *testing.T) {
	markup := "<html><head>" + ldScript(t, map[string]any{
		"@type":      "JobPosting",
		"title":      "Engineer",
		"datePosted": "sometime in spring",
	}) + "</head><body></body></html>"

	job := Lever{}.Extract(mustSnapshot(t, "https://jobs.lever.co/acme/1", markup))
	assert.Equal(t, "Engineer", job.Position)
	assert.Empty(t, job.PostedDate)
}

func TestExtractIsIdempotent(t *testing.T) {
	markup := `<html><head><meta property="og:title" content="Acme hiring Backend Engineer in Berlin, Germany | LinkedIn"></head>
<body><span class="posted-time-ago__text">2 weeks ago</span>
<div class="show-more-less-html__markup"><p>` + jobDescription + `</p></div></body></html>`
	p := mustSnapshot(t, "https://www.linkedin.com/jobs/view/42", markup)

	first := LinkedIn{}.Extract(p)
	second := LinkedIn{}.Extract(p)
	assert.Equal(t, first, second)
	assert.False(t, first.IsEmpty())
}

func TestJobPostingJSONOmitsUnsetFields(t *testing.T) {
	b, err := json.Marshal(JobPosting{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	b, err = json.Marshal(JobPosting{Position: "Engineer", WorkArrangement: normalize.OnSite})
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":"Engineer","workArrangement":"On-site"}`, string(b))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
