package core

import "strings"

// Keywords splits a comma-separated search query into trimmed terms.
func Keywords(query string) []string {
	var keywords []string
	for _, k := range strings.Split(query, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
