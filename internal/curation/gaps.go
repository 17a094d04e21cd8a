package curation

// GapSet lists the ideal-distribution categories a catalogue has no
// coverage for, per facet. Each list keeps the ideal's popularity
// order, so gaps[0] is always the most popular missing category.
type GapSet struct {
	Mediums     []string `json:"mediums"`
	Styles      []string `json:"styles"`
	PriceRanges []string `json:"price_ranges"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
}

// Empty reports whether the catalogue covers every ideal category.
func (g GapSet) Empty() bool {
	return len(g.Mediums) == 0 && len(g.Styles) == 0 && len(g.PriceRanges) == 0 &&
		len(g.Colors) == 0 && len(g.Sizes) == 0
}

// DetectGaps compares a catalogue's items against the ideal
// distribution. A category is a gap when no item covers it: for colors
// the union of every item's color list counts, and for price ranges an
// ideal bucket is covered when any priced item falls inside it. Items
// without a value for a facet simply contribute nothing to it.
func DetectGaps(items []Item, ideal Distribution) GapSet {
	mediums := make(map[string]bool)
	styles := make(map[string]bool)
	prices := make(map[string]bool)
	colors := make(map[string]bool)
	sizes := make(map[string]bool)
	for _, item := range items {
		if item.Medium != "" {
			mediums[item.Medium] = true
		}
		if item.Style != "" {
			styles[item.Style] = true
		}
		if item.Price != nil {
			if bucket := PriceRangeFor(*item.Price); bucket != "" {
				prices[bucket] = true
			}
		}
		for _, color := range item.Colors {
			colors[color] = true
		}
		if item.SizeCategory != "" {
			sizes[item.SizeCategory] = true
		}
	}

	return GapSet{
		Mediums:     missingFrom(ideal.Mediums, mediums),
		Styles:      missingFrom(ideal.Styles, styles),
		PriceRanges: missingFrom(ideal.PriceRanges, prices),
		Colors:      missingFrom(ideal.Colors, colors),
		Sizes:       missingFrom(ideal.Sizes, sizes),
	}
}

// missingFrom returns the ideal categories absent from covered,
// preserving ideal order.
func missingFrom(ideal []string, covered map[string]bool) []string {
	missing := make([]string, 0, len(ideal))
	for _, category := range ideal {
		if !covered[category] {
			missing = append(missing, category)
		}
	}
	return missing
}
