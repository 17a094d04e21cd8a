package curation

// CategoryCount is one histogram entry.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Balance holds per-facet histograms of a catalogue's items. Entries
// are kept in first-seen order, which means catalogue display order,
// so output is deterministic without being alphabetized.
type Balance struct {
	Mediums     []CategoryCount `json:"mediums"`
	Styles      []CategoryCount `json:"styles"`
	PriceRanges []CategoryCount `json:"price_ranges"`
	Colors      []CategoryCount `json:"colors"`
	Sizes       []CategoryCount `json:"sizes"`
}

// ComputeBalance tallies each facet across a catalogue's items. An item
// counts once per facet it has a value for, except colors, where it
// counts once per color it carries.
func ComputeBalance(items []Item) Balance {
	mediums := newCounter()
	styles := newCounter()
	prices := newCounter()
	colors := newCounter()
	sizes := newCounter()
	for _, item := range items {
		mediums.add(item.Medium)
		styles.add(item.Style)
		if item.Price != nil {
			prices.add(PriceRangeFor(*item.Price))
		}
		for _, color := range item.Colors {
			colors.add(color)
		}
		sizes.add(item.SizeCategory)
	}

	return Balance{
		Mediums:     mediums.entries(),
		Styles:      styles.entries(),
		PriceRanges: prices.entries(),
		Colors:      colors.entries(),
		Sizes:       sizes.entries(),
	}
}

// ImbalanceSet lists, per facet, the categories that dominate a
// catalogue. Size has no skew threshold: the four classes are coarse
// enough that concentration there is normal.
type ImbalanceSet struct {
	Mediums     []string `json:"mediums"`
	Styles      []string `json:"styles"`
	PriceRanges []string `json:"price_ranges"`
	Colors      []string `json:"colors"`
}

// Empty reports whether no category crosses its skew threshold.
func (s ImbalanceSet) Empty() bool {
	return len(s.Mediums) == 0 && len(s.Styles) == 0 &&
		len(s.PriceRanges) == 0 && len(s.Colors) == 0
}

// Skew thresholds per facet: a category is flagged when its share of
// the facet's total strictly exceeds the threshold. Price tolerates
// more concentration because artists legitimately cluster around a
// price point; color is strictest because color counts are spread
// across multi-color items.
const (
	mediumSkewThreshold = 0.4
	styleSkewThreshold  = 0.4
	priceSkewThreshold  = 0.5
	colorSkewThreshold  = 0.3
)

// DetectImbalance flags categories whose share of their facet's total
// exceeds the facet threshold. A facet with a zero total flags nothing.
func DetectImbalance(balance Balance) ImbalanceSet {
	return ImbalanceSet{
		Mediums:     skewedCategories(balance.Mediums, mediumSkewThreshold),
		Styles:      skewedCategories(balance.Styles, styleSkewThreshold),
		PriceRanges: skewedCategories(balance.PriceRanges, priceSkewThreshold),
		Colors:      skewedCategories(balance.Colors, colorSkewThreshold),
	}
}

func skewedCategories(entries []CategoryCount, threshold float64) []string {
	var total int
	for _, entry := range entries {
		total += entry.Count
	}
	if total == 0 {
		return nil
	}

	var skewed []string
	for _, entry := range entries {
		if float64(entry.Count)/float64(total) > threshold {
			skewed = append(skewed, entry.Category)
		}
	}
	return skewed
}
