package curation

// priceBucket is one fixed price range. Min is inclusive, Max is
// exclusive; a bucket with Max <= 0 is unbounded above.
type priceBucket struct {
	Label string
	Min   float64
	Max   float64
}

// priceBuckets is the fixed bucket scheme, ordered from cheapest to most
// expensive. Labels are stable identifiers used in gaps, balance
// histograms, and recommendation text.
var priceBuckets = []priceBucket{
	{Label: "under-500", Min: 0, Max: 500},
	{Label: "500-1000", Min: 500, Max: 1000},
	{Label: "1000-5000", Min: 1000, Max: 5000},
	{Label: "5000-10000", Min: 5000, Max: 10000},
	{Label: "10000+", Min: 10000, Max: 0},
}

// PriceRanges returns the bucket labels in ascending price order.
func PriceRanges() []string {
	labels := make([]string, len(priceBuckets))
	for i, bucket := range priceBuckets {
		labels[i] = bucket.Label
	}
	return labels
}

// PriceRangeFor returns the bucket label for a price, or "" for
// negative prices.
func PriceRangeFor(price float64) string {
	if price < 0 {
		return ""
	}
	for _, bucket := range priceBuckets {
		if price >= bucket.Min && (bucket.Max <= 0 || price < bucket.Max) {
			return bucket.Label
		}
	}
	return ""
}
