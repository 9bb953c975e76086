package source

import (
	"strings"

	"github.com/baxromumarov/job-capture/internal/normalize"
	"github.com/baxromumarov/job-capture/internal/page"
)

// Posting is one schema.org JobPosting object from an ld+json block.
type Posting map[string]any

// JobPosting returns the first JobPosting found in the page's ld+json
// blocks, whether encoded as a singleton, an array or an @graph.
func JobPosting(p *page.Snapshot) (Posting, bool) {
	for _, payload := range p.StructuredData() {
		if found := findJobPosting(payload); found != nil {
			return found, true
		}
	}
	return nil, false
}

func findJobPosting(payload any) Posting {
	switch t := payload.(type) {
	case map[string]any:
		if isJobPostingType(t["@type"]) {
			return Posting(t)
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				if found := findJobPosting(item); found != nil {
					return found
				}
			}
		}
	case []any:
		for _, item := range t {
			if found := findJobPosting(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func isJobPostingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func (jp Posting) Title() (string, bool) {
	return String(jp["title"])
}

func (jp Posting) Description() (string, bool) {
	return String(jp["description"])
}

func (jp Posting) DatePosted() (string, bool) {
	return String(jp["datePosted"])
}

func (jp Posting) Company() (string, bool) {
	v := jp["hiringOrganization"]
	if name, ok := String(v); ok {
		return name, true
	}
	if org, ok := FirstElement(v); ok {
		if m, ok := org.(map[string]any); ok {
			return String(m["name"])
		}
	}
	return "", false
}

// Location joins locality, region and country of the first usable
// jobLocation entry.
func (jp Posting) Location() (string, bool) {
	loc := parseLocation(jp["jobLocation"])
	return loc, loc != ""
}

// ApplicantLocation is what remote postings publish instead of jobLocation.
func (jp Posting) ApplicantLocation() (string, bool) {
	loc := parseLocation(jp["applicantLocationRequirements"])
	return loc, loc != ""
}

// IsTelecommute reports jobLocationType TELECOMMUTE.
func (jp Posting) IsTelecommute() bool {
	v, ok := String(jp["jobLocationType"])
	return ok && strings.EqualFold(v, "TELECOMMUTE")
}

func (jp Posting) EmploymentType() (string, bool) {
	switch t := jp["employmentType"].(type) {
	case []any:
		var parts []string
		for _, item := range t {
			if s, ok := String(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), len(parts) > 0
	default:
		return String(t)
	}
}

// Salary reads baseSalary, falling back to estimatedSalary. value may be a
// bare number or a QuantitativeValue with minValue/maxValue.
func (jp Posting) Salary() (normalize.Salary, bool) {
	for _, key := range []string{"baseSalary", "estimatedSalary"} {
		if s, ok := parseSalary(jp[key]); ok {
			return s, true
		}
	}
	return normalize.Salary{}, false
}

func parseSalary(v any) (normalize.Salary, bool) {
	first, ok := FirstElement(v)
	if !ok {
		return normalize.Salary{}, false
	}
	amount, ok := first.(map[string]any)
	if !ok {
		return normalize.Salary{}, false
	}

	var s normalize.Salary
	s.Currency, _ = String(amount["currency"])
	s.Unit, _ = String(amount["unitText"])

	switch value := amount["value"].(type) {
	case map[string]any:
		if s.Currency == "" {
			s.Currency, _ = String(value["currency"])
		}
		if unit, ok := String(value["unitText"]); ok {
			s.Unit = unit
		}
		s.Min = numberPtr(value["minValue"])
		s.Max = numberPtr(value["maxValue"])
		if s.Min == nil && s.Max == nil {
			s.Min = numberPtr(value["value"])
		}
	default:
		s.Min = numberPtr(value)
	}
	if s.Min == nil {
		s.Min = numberPtr(amount["minValue"])
	}
	if s.Max == nil {
		s.Max = numberPtr(amount["maxValue"])
	}
	return s, s.Min != nil || s.Max != nil
}

func numberPtr(v any) *float64 {
	if f, ok := Number(v); ok {
		return &f
	}
	return nil
}

func parseLocation(v any) string {
	switch t := v.(type) {
	case string:
		return normalize.CleanText(t)
	case []any:
		for _, item := range t {
			if loc := parseLocation(item); loc != "" {
				return loc
			}
		}
	case map[string]any:
		if addr, ok := t["address"].(map[string]any); ok {
			if loc := joinParts(
				stringOrName(addr["addressLocality"]),
				stringOrName(addr["addressRegion"]),
				stringOrName(addr["addressCountry"]),
			); loc != "" {
				return loc
			}
		}
		if addr, ok := String(t["address"]); ok {
			return addr
		}
		return stringOrName(t["name"])
	}
	return ""
}

func stringOrName(v any) string {
	if s, ok := String(v); ok {
		return s
	}
	if m, ok := v.(map[string]any); ok {
		s, _ := String(m["name"])
		return s
	}
	return ""
}

func joinParts(parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(p))
	}
	return strings.Join(out, ", ")
}
