package curation

// Score deductions. Medium gaps cost most because medium is the
// primary browse facet; small catalogues pay a steep per-item penalty
// under the five-item floor.
const (
	mediumGapPenalty      = 5
	priceGapPenalty       = 3
	styleGapPenalty       = 4
	colorGapPenalty       = 2
	mediumSkewPenalty     = 3
	smallCataloguePenalty = 10
	smallCatalogueFloor   = 5
)

// Score rates a catalogue's curation health from 0 to 100. It starts
// at 100 and deducts for gaps, skewed mediums, and undersized
// catalogues. Size gaps carry no deduction since the size facet is a
// fixed scheme rather than a popularity ranking.
func Score(gaps GapSet, imbalance ImbalanceSet, itemCount int) int {
	score := 100
	score -= mediumGapPenalty * len(gaps.Mediums)
	score -= priceGapPenalty * len(gaps.PriceRanges)
	score -= styleGapPenalty * len(gaps.Styles)
	score -= colorGapPenalty * len(gaps.Colors)
	score -= mediumSkewPenalty * len(imbalance.Mediums)
	score -= smallCataloguePenalty * max(0, smallCatalogueFloor-itemCount)
	return max(0, min(100, score))
}
