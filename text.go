package main

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var brPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// htmlToText normalizes an HTML-formatted comment body to plain text. The API
// returns display text with markup (<br>, <a>, entities); the export carries
// plain text only. Line breaks are preserved as newlines.
func htmlToText(s string) string {
	if s == "" {
		return ""
	}

	// goquery drops <br> elements without inserting whitespace, so convert
	// them to newlines before parsing.
	s = brPattern.ReplaceAllString(s, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// Not expected for fragment input; keep the raw text rather than drop it.
		return s
	}

	return strings.TrimSpace(doc.Text())
}
