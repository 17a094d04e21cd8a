package curation

import (
	"math"

	"github.com/galleriaapp/galleria-server/internal/domain"
)

// Global bounds on recommended catalogue sizes. Below six a catalogue
// reads as unfinished; above twenty-five browsers stop scrolling.
const (
	minCatalogueSize = 6
	maxCatalogueSize = 25
)

// SizeRange is the recommended item count band for a catalogue.
type SizeRange struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Ideal int `json:"ideal"`
}

// contains reports whether a catalogue of n items sits inside the band.
func (r SizeRange) contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// baseSizeByType is the fallback starting size when no peer data is
// available.
var baseSizeByType = map[domain.CatalogueType]int{
	domain.CatalogueShowcase:   12,
	domain.CataloguePortfolio:  15,
	domain.CatalogueExhibition: 20,
	domain.CatalogueCollection: 10,
	domain.CatalogueSeries:     8,
	domain.CatalogueMixed:      12,
}

const defaultBaseSize = 12

// experienceMultiplier scales the fallback size: seasoned artists are
// expected to sustain larger catalogues.
var experienceMultiplier = map[domain.ExperienceLevel]float64{
	domain.ExperienceBeginner:     0.8,
	domain.ExperienceIntermediate: 1.0,
	domain.ExperienceAdvanced:     1.2,
	domain.ExperienceExpert:       1.4,
}

// OptimalSizeRange computes the recommended size band for a catalogue.
// When peer sizes are available the band brackets the peer average at
// 70% to 130%. Otherwise it falls back to a per-type base size scaled
// by the artist's experience, bracketed at 80% to 120%.
func OptimalSizeRange(catalogueType domain.CatalogueType, experience domain.ExperienceLevel, peerSizes []int) SizeRange {
	if len(peerSizes) > 0 {
		var sum int
		for _, size := range peerSizes {
			sum += size
		}
		avg := float64(sum) / float64(len(peerSizes))
		return normalizeRange(
			int(math.Floor(avg*0.7)),
			int(math.Ceil(avg*1.3)),
			int(math.Round(avg)),
		)
	}

	base, ok := baseSizeByType[catalogueType]
	if !ok {
		base = defaultBaseSize
	}
	multiplier, ok := experienceMultiplier[experience]
	if !ok {
		multiplier = 1.0
	}
	scaled := float64(base) * multiplier
	return normalizeRange(
		int(math.Floor(scaled*0.8)),
		int(math.Ceil(scaled*1.2)),
		int(math.Round(scaled)),
	)
}

// normalizeRange clamps the band into the global bounds and keeps
// min <= ideal <= max.
func normalizeRange(minSize, maxSize, ideal int) SizeRange {
	minSize = max(minCatalogueSize, min(minSize, maxCatalogueSize))
	maxSize = max(minCatalogueSize, min(maxSize, maxCatalogueSize))
	if minSize > maxSize {
		minSize = maxSize
	}
	ideal = max(minSize, min(ideal, maxSize))
	return SizeRange{Min: minSize, Max: maxSize, Ideal: ideal}
}
