package urlutil

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

var atsHosts = []string{
	"boards.greenhouse.io",
	"greenhouse.io",
	"jobs.lever.co",
	"lever.co",
	"jobs.ashbyhq.com",
	"ashbyhq.com",
	"workdayjobs.com",
	"myworkdayjobs.com",
	"myworkdaysite.com",
	"smartrecruiters.com",
	"bamboohr.com",
	"workable.com",
}

// Normalize canonicalizes a page address for use as a storage key: lower-case
// host without www, cleaned path, tracking parameters dropped, sorted query.
func Normalize(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	u.Fragment = ""
	u.Host = normalizeHost(u.Host)
	u.Path = normalizePath(u.Path)
	u.RawQuery = normalizeQuery(u.RawQuery)
	return u.String(), u.Hostname(), nil
}

// Host returns the normalized host of an address, or "" when it has none.
func Host(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + strings.TrimSpace(raw))
		if err != nil {
			return ""
		}
	}
	return normalizeHost(u.Hostname())
}

// HostMatches reports whether the address host is one of domains or a
// subdomain of one. Unparsable input falls back to substring matching.
func HostMatches(raw string, domains ...string) bool {
	host := Host(raw)
	if host == "" {
		lower := strings.ToLower(raw)
		for _, d := range domains {
			if strings.Contains(lower, d) {
				return true
			}
		}
		return false
	}
	for _, d := range domains {
		d = normalizeHost(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// HostHasLabel matches country variants such as de.indeed.com or indeed.co.uk.
func HostHasLabel(raw, label string) bool {
	host := Host(raw)
	for _, part := range strings.Split(host, ".") {
		if part == label {
			return true
		}
	}
	return false
}

// PathContains reports whether any fragment occurs in the lower-cased path
// and query of the address.
func PathContains(raw string, fragments ...string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	target := strings.ToLower(raw)
	if err == nil {
		target = strings.ToLower(u.EscapedPath() + "?" + u.RawQuery)
	}
	for _, f := range fragments {
		if strings.Contains(target, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

func IsATSHost(host string) bool {
	h := normalizeHost(host)
	for _, ats := range atsHosts {
		if strings.Contains(h, ats) {
			return true
		}
	}
	return false
}

// FirstLabel returns the left-most host label, e.g. the tenant in
// acme.wd5.myworkdayjobs.com.
func FirstLabel(raw string) string {
	host := Host(raw)
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	clean := path.Clean(p)
	if clean == "." {
		return "/"
	}
	if clean != "/" && strings.HasSuffix(clean, "/") {
		clean = strings.TrimSuffix(clean, "/")
	}
	return clean
}

func normalizeQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	for key := range values {
		lk := strings.ToLower(key)
		if strings.HasPrefix(lk, "utm_") || lk == "gclid" || lk == "fbclid" || lk == "ref" || lk == "source" || lk == "trk" || lk == "refid" {
			delete(values, key)
		}
	}
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	normalized := url.Values{}
	for _, k := range keys {
		normalized[k] = values[k]
	}
	return normalized.Encode()
}
