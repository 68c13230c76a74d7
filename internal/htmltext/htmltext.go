// Package htmltext converts untrusted HTML fragments from the API into plain
// text that is safe to print to a terminal.
package htmltext

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements that end a line of text
const blockSelector = "p, div, li, ul, ol, blockquote, h1, h2, h3, h4, h5, h6"

// ToText parses an HTML fragment and returns its text content. Block elements
// become paragraphs separated by a blank line, <br> becomes a line break,
// script and style contents are dropped and control characters are removed.
func ToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	doc.Find("script, style, iframe, object, embed").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	return normalize(Clean(doc.Text()))
}

// Clean removes control characters (including ESC, which could smuggle
// terminal escape sequences) while keeping newlines.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Line is Clean for single-line fields such as names
func Line(s string) string {
	return strings.Join(strings.Fields(Clean(s)), " ")
}

// normalize collapses runs of spaces within lines and runs of blank lines
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true // suppress leading blank lines

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
