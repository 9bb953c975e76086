package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	MaxDescriptionLength = 1000
	MinDescriptionLength = 100
	Ellipsis             = "..."
)

var blockElements = map[atom.Atom]struct{}{
	atom.Address:    {},
	atom.Article:    {},
	atom.Aside:      {},
	atom.Blockquote: {},
	atom.Dd:         {},
	atom.Div:        {},
	atom.Dl:         {},
	atom.Dt:         {},
	atom.Footer:     {},
	atom.H1:         {},
	atom.H2:         {},
	atom.H3:         {},
	atom.H4:         {},
	atom.H5:         {},
	atom.H6:         {},
	atom.Header:     {},
	atom.Hr:         {},
	atom.Li:         {},
	atom.Main:       {},
	atom.Ol:         {},
	atom.P:          {},
	atom.Pre:        {},
	atom.Section:    {},
	atom.Table:      {},
	atom.Tr:         {},
	atom.Ul:         {},
}

var skippedElements = map[atom.Atom]struct{}{
	atom.Script:   {},
	atom.Style:    {},
	atom.Noscript: {},
	atom.Template: {},
	atom.Svg:      {},
}

// CleanText collapses whitespace (including non-breaking spaces) into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// HTMLToText converts a markup fragment to plain text. The fragment is parsed
// into its own tree, so callers can pass markup taken from a live document.
func HTMLToText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return CleanText(markup)
	}

	var sb strings.Builder
	for _, n := range nodes {
		writeText(&sb, n)
	}
	return collapseLines(sb.String())
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if _, skip := skippedElements[n.DataAtom]; skip {
			return
		}
		if n.DataAtom == atom.Br {
			sb.WriteByte('\n')
			return
		}
	}

	_, block := blockElements[n.DataAtom]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	}
}

func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if clean := CleanText(line); clean != "" {
			out = append(out, clean)
		}
	}
	return strings.Join(out, "\n")
}

// Truncate cuts s to limit runes and appends Ellipsis when anything was cut.
func Truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + Ellipsis
}

// leftoverTag spots markup that survived one parse, which happens when a
// source entity-encodes its HTML.
var leftoverTag = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(?:\s[^<>]*)?/?>`)

// Description turns raw description markup into the stored form. Texts of
// MinDescriptionLength runes or fewer are rejected as boilerplate.
func Description(raw string) (string, bool) {
	text := strings.TrimSpace(HTMLToText(raw))
	if leftoverTag.MatchString(text) {
		text = strings.TrimSpace(HTMLToText(text))
	}
	if utf8.RuneCountInString(text) <= MinDescriptionLength {
		return "", false
	}
	return Truncate(text, MaxDescriptionLength), true
}
