// Package normalize provides utilities for normalizing and sanitizing artwork data.
package normalize

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches common HTML tags to detect if a string contains HTML.
// Looks for opening tags like <p>, <br>, <div>, <b>, etc.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// containsHTML checks if a string appears to contain HTML markup.
func containsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// Description cleans an artwork description for storage. Marketplace
// listings are often pasted in as HTML; those are converted to Markdown.
// Plain text is returned trimmed but otherwise unchanged.
func Description(s string) string {
	s = sanitizeString(s)
	if s == "" || !containsHTML(s) {
		return strings.TrimSpace(s)
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		// Keep the original text when conversion fails.
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(markdown)
}

var (
	// Unit suffixes that show up in dimension strings ("24 x 36 in").
	dimensionUnits = regexp.MustCompile(`(?i)\b(inches|inch|in|cm|mm|centimeters|millimeters)\.?\s*$`)
	// Whitespace runs.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Dimensions canonicalizes a raw dimension string ahead of parsing:
// trims units, collapses whitespace, and lowercases separators.
// "24 × 36 in." -> "24 × 36". It never validates; unparseable input
// passes through for the size classifier to skip.
func Dimensions(s string) string {
	s = sanitizeString(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = dimensionUnits.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return s
}

// sanitizeString removes null bytes, which upset JSON encoding and the
// database layer. Imported metadata occasionally carries them.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
