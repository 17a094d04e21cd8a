package curation

import "slices"

// How many top categories of the market sample make up the ideal
// distribution for each facet.
const (
	topMediums     = 8
	topStyles      = 6
	topPriceRanges = 4
	topColors      = 8
)

// Distribution is the ideal facet coverage a catalogue is measured
// against. Each list is ordered most to least popular; gap detection
// preserves that order.
type Distribution struct {
	Version     string   `json:"version"`
	Mediums     []string `json:"mediums"`
	Styles      []string `json:"styles"`
	PriceRanges []string `json:"price_ranges"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
}

// staticDistributionVersion identifies the built-in fallback so stored
// analyses can tell which ideal they were computed against.
const staticDistributionVersion = "static-v1"

var staticDistribution = Distribution{
	Version: staticDistributionVersion,
	Mediums: []string{
		"oil", "acrylic", "watercolor", "digital",
		"photography", "mixed-media", "sculpture", "ink",
	},
	Styles: []string{
		"abstract", "contemporary", "impressionism",
		"realism", "minimalism", "pop-art",
	},
	PriceRanges: []string{"under-500", "500-1000", "1000-5000", "5000-10000"},
	Colors: []string{
		"blue", "green", "red", "yellow",
		"black", "white", "orange", "purple",
	},
	Sizes: []string{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge},
}

// StaticDistribution returns the built-in fallback distribution, used
// whenever no market sample is available. Callers get a copy so the
// constant cannot be mutated.
func StaticDistribution() Distribution {
	return Distribution{
		Version:     staticDistribution.Version,
		Mediums:     slices.Clone(staticDistribution.Mediums),
		Styles:      slices.Clone(staticDistribution.Styles),
		PriceRanges: slices.Clone(staticDistribution.PriceRanges),
		Colors:      slices.Clone(staticDistribution.Colors),
		Sizes:       slices.Clone(staticDistribution.Sizes),
	}
}

// DeriveDistribution builds the ideal distribution from a marketplace
// sample by ranking each facet's categories by frequency. An empty
// sample falls back to the static distribution. Size categories are
// always the full fixed scheme because sample items carry no
// dimensions.
func DeriveDistribution(sample []MarketItem) Distribution {
	if len(sample) == 0 {
		return StaticDistribution()
	}

	mediums := newCounter()
	styles := newCounter()
	prices := newCounter()
	colors := newCounter()
	for _, item := range sample {
		mediums.add(item.Medium)
		styles.add(item.Style)
		prices.add(item.PriceRange)
		for _, color := range item.Colors {
			colors.add(color)
		}
	}

	return Distribution{
		Version:     "market-sample",
		Mediums:     mediums.top(topMediums),
		Styles:      styles.top(topStyles),
		PriceRanges: prices.top(topPriceRanges),
		Colors:      colors.top(topColors),
		Sizes:       SizeCategories(),
	}
}
