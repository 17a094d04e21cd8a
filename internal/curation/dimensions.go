package curation

import (
	"regexp"
	"strconv"
)

// Size category labels, ordered smallest to largest.
const (
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeExtraLarge = "extra-large"
)

// SizeCategories returns all size category labels in ascending order.
// Unlike the other facets, size categories are a fixed scheme rather
// than market-derived, so the ideal distribution always contains all
// four.
func SizeCategories() []string {
	return []string{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}
}

// dimensionPattern matches the first "W x H" pair in a dimension
// string. Accepts decimals, either separator glyph, and any spacing, so
// "24 x 36", "24x36" and "24.5 × 30 in" all parse.
var dimensionPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)`)

// ParseDimensions extracts width and height from a dimension string.
// ok is false when no "W x H" pair is found.
func ParseDimensions(dimensions string) (width, height float64, ok bool) {
	match := dimensionPattern.FindStringSubmatch(dimensions)
	if match == nil {
		return 0, 0, false
	}
	width, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, 0, false
	}
	height, err = strconv.ParseFloat(match[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}

// SizeCategoryFor classifies a dimension string by area (width times
// height): under 100 is small, under 400 medium, under 1000 large, and
// anything bigger extra-large. Unparseable strings return "" and the
// item is simply skipped by size analysis.
func SizeCategoryFor(dimensions string) string {
	width, height, ok := ParseDimensions(dimensions)
	if !ok {
		return ""
	}
	area := width * height
	switch {
	case area < 100:
		return SizeSmall
	case area < 400:
		return SizeMedium
	case area < 1000:
		return SizeLarge
	default:
		return SizeExtraLarge
	}
}
