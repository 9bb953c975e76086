package page

import (
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var assignmentPattern = regexp.MustCompile(`window\.([A-Za-z_$][\w$]*)\s*=\s*`)

// Script ids whose JSON body is treated as a global of the same name.
var jsonScriptIDs = []string{"__NEXT_DATA__", "__NUXT_DATA__", "__APOLLO_STATE__"}

// ScanGlobals finds `window.name = {...}` assignments in inline scripts plus
// well-known JSON script tags. Objects that fail to decode are skipped.
func ScanGlobals(doc *goquery.Document) map[string]any {
	globals := make(map[string]any)
	if doc == nil {
		return globals
	}

	doc.Find("script:not([src])").Each(func(_ int, sel *goquery.Selection) {
		body := []byte(sel.Text())
		for _, loc := range assignmentPattern.FindAllSubmatchIndex(body, -1) {
			name := string(body[loc[2]:loc[3]])
			if _, seen := globals[name]; seen {
				continue
			}
			start := loc[1]
			if start >= len(body) || body[start] != '{' {
				continue
			}
			raw, err := extractJSONObject(body, start)
			if err != nil {
				slog.Debug("page state object not closed", "global", name, "error", err)
				continue
			}
			var value map[string]any
			if err := json.Unmarshal(raw, &value); err != nil {
				slog.Debug("page state object not JSON", "global", name, "error", err)
				continue
			}
			globals[name] = value
		}
	})

	for _, id := range jsonScriptIDs {
		raw := strings.TrimSpace(doc.Find(`script[id="` + id + `"]`).First().Text())
		if raw == "" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			slog.Debug("page state script not JSON", "global", id, "error", err)
			continue
		}
		globals[id] = value
	}
	return globals
}

// extractJSONObject returns the balanced {...} starting at body[start],
// honouring string literals and escapes.
func extractJSONObject(body []byte, start int) ([]byte, error) {
	depth := 0
	inString := false
	escape := false

	for i := start; i < len(body); i++ {
		c := body[i]
		if inString {
			if escape {
				escape = false
				continue
			}
			if c == '\\' {
				escape = true
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[start : i+1], nil
			}
		}
	}

	return nil, errors.New("json object end not found")
}
