package curation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/galleriaapp/galleria-server/internal/id"
)

// RecommendationType classifies what a recommendation asks the artist
// to do.
type RecommendationType string

const (
	RecommendationAddArtwork    RecommendationType = "add_artwork"
	RecommendationRemoveArtwork RecommendationType = "remove_artwork"
	RecommendationReorder       RecommendationType = "reorder"
	RecommendationMaintain      RecommendationType = "maintain"
)

// Priority buckets recommendations for display ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// SuggestedArtwork names a concrete artwork a recommendation applies
// to, with a per-artwork reason.
type SuggestedArtwork struct {
	ArtworkID string `json:"artwork_id"`
	Reason    string `json:"reason"`
}

// PositionChange proposes moving one artwork to a new display
// position.
type PositionChange struct {
	ArtworkID         string `json:"artwork_id"`
	CurrentPosition   int    `json:"current_position"`
	SuggestedPosition int    `json:"suggested_position"`
	Reason            string `json:"reason"`
}

// Recommendation is one actionable curation suggestion.
type Recommendation struct {
	ID                string             `json:"id"`
	Type              RecommendationType `json:"type"`
	Priority          Priority           `json:"priority"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Reason            string             `json:"reason"`
	Impact            int                `json:"impact"`
	SuggestedArtworks []SuggestedArtwork `json:"suggested_artworks,omitempty"`
	PositionChanges   []PositionChange   `json:"position_changes,omitempty"`
}

// Options controls which recommendation families are generated.
type Options struct {
	// FillGaps enables gap-filling recommendations.
	FillGaps bool
	// BalanceDistribution enables reorder recommendations for skewed
	// facets.
	BalanceDistribution bool
	// MaxArtworks, when positive, caps the recommended catalogue size
	// below the computed range.
	MaxArtworks int
}

// DefaultOptions enables every recommendation family with no size cap.
func DefaultOptions() Options {
	return Options{FillGaps: true, BalanceDistribution: true}
}

// facetWeight fixes the priority and impact of gap recommendations per
// facet. The same weights apply whether or not an inventory pool is
// available; a missing pool only strips the concrete suggestions.
type facetWeight struct {
	Priority Priority
	Impact   int
}

var gapWeights = map[Facet]facetWeight{
	FacetMedium:       {Priority: PriorityHigh, Impact: 30},
	FacetStyle:        {Priority: PriorityMedium, Impact: 25},
	FacetColor:        {Priority: PriorityLow, Impact: 15},
	FacetSizeCategory: {Priority: PriorityMedium, Impact: 20},
}

var gapFacetOrder = []Facet{FacetMedium, FacetStyle, FacetColor, FacetSizeCategory}

const (
	growImpact    = 40
	trimImpact    = 30
	reorderImpact = 20

	maxGapSuggestions  = 5
	maxSizeSuggestions = 10
)

// GenerateRecommendations produces the full recommendation list for a
// catalogue from its analysis results. The pool holds the artist's
// uncatalogued artworks; nil means no pool was available and gap
// recommendations are emitted without concrete suggestions. Results
// are ordered by priority, then impact descending.
func GenerateRecommendations(catalogue Catalogue, gaps GapSet, imbalance ImbalanceSet, size SizeRange, pool []Item, opts Options) ([]Recommendation, error) {
	var recs []Recommendation
	if opts.FillGaps {
		recs = append(recs, gapRecommendations(gaps, pool)...)
	}
	recs = append(recs, sizeRecommendations(catalogue, applyMaxArtworks(size, opts.MaxArtworks), pool)...)
	if opts.BalanceDistribution {
		recs = append(recs, reorderRecommendations(catalogue, imbalance)...)
	}

	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		if d := priorityRank[a.Priority] - priorityRank[b.Priority]; d != 0 {
			return d
		}
		return b.Impact - a.Impact
	})

	for i := range recs {
		recID, err := id.Generate("rec")
		if err != nil {
			return nil, fmt.Errorf("generate recommendation id: %w", err)
		}
		recs[i].ID = recID
	}
	return recs, nil
}

// gapRecommendations emits one add_artwork recommendation per facet
// with gaps. With a pool, facets whose gaps nothing in inventory can
// fill are skipped; without one, the recommendation still goes out so
// the artist knows what to create next.
func gapRecommendations(gaps GapSet, pool []Item) []Recommendation {
	var recs []Recommendation
	for _, facet := range gapFacetOrder {
		missing := facetGaps(gaps, facet)
		if len(missing) == 0 {
			continue
		}

		weight := gapWeights[facet]
		rec := Recommendation{
			Type:        RecommendationAddArtwork,
			Priority:    weight.Priority,
			Impact:      weight.Impact,
			Title:       fmt.Sprintf("Add works in missing %ss", facet.label()),
			Description: fmt.Sprintf("Popular %s categories not represented in this catalogue: %s.", facet.label(), strings.Join(missing, ", ")),
			Reason:      fmt.Sprintf("covering popular %s categories attracts a wider audience", facet.label()),
		}
		if pool != nil {
			rec.SuggestedArtworks = gapCandidates(pool, facet, missing)
			if len(rec.SuggestedArtworks) == 0 {
				continue
			}
		}
		recs = append(recs, rec)
	}
	return recs
}

func facetGaps(gaps GapSet, facet Facet) []string {
	switch facet {
	case FacetMedium:
		return gaps.Mediums
	case FacetStyle:
		return gaps.Styles
	case FacetColor:
		return gaps.Colors
	case FacetSizeCategory:
		return gaps.Sizes
	default:
		return nil
	}
}

// gapCandidates picks up to five pool items that cover a missing
// category, in pool order. Each suggestion names the gap it fills.
func gapCandidates(pool []Item, facet Facet, missing []string) []SuggestedArtwork {
	missingSet := make(map[string]bool, len(missing))
	for _, category := range missing {
		missingSet[category] = true
	}

	var suggestions []SuggestedArtwork
	for _, item := range pool {
		var category string
		switch facet {
		case FacetMedium:
			if missingSet[item.Medium] {
				category = item.Medium
			}
		case FacetStyle:
			if missingSet[item.Style] {
				category = item.Style
			}
		case FacetColor:
			for _, color := range item.Colors {
				if missingSet[color] {
					category = color
					break
				}
			}
		case FacetSizeCategory:
			if missingSet[item.SizeCategory] {
				category = item.SizeCategory
			}
		}
		if category == "" {
			continue
		}

		suggestions = append(suggestions, SuggestedArtwork{
			ArtworkID: item.ID,
			Reason:    fmt.Sprintf("fills %s gap", category),
		})
		if len(suggestions) == maxGapSuggestions {
			break
		}
	}
	return suggestions
}

// applyMaxArtworks caps the size band when the caller set a maximum.
func applyMaxArtworks(size SizeRange, maxArtworks int) SizeRange {
	if maxArtworks <= 0 || maxArtworks >= size.Max {
		return size
	}
	size.Max = maxArtworks
	if size.Min > size.Max {
		size.Min = size.Max
	}
	if size.Ideal > size.Max {
		size.Ideal = size.Max
	}
	return size
}

// sizeRecommendations compares the catalogue's item count against its
// recommended band and emits exactly one recommendation: grow, trim,
// or maintain.
func sizeRecommendations(catalogue Catalogue, size SizeRange, pool []Item) []Recommendation {
	current := len(catalogue.Items)
	switch {
	case current < size.Min:
		rec := Recommendation{
			Type:        RecommendationAddArtwork,
			Priority:    PriorityHigh,
			Impact:      growImpact,
			Title:       "Grow this catalogue",
			Description: fmt.Sprintf("This catalogue has %d works but needs at least %d to feel complete.", current, size.Min),
			Reason:      fmt.Sprintf("catalogues of this type perform best with %d to %d works", size.Min, size.Max),
		}
		limit := min(size.Min-current, maxSizeSuggestions)
		for _, item := range pool {
			if len(rec.SuggestedArtworks) == limit {
				break
			}
			rec.SuggestedArtworks = append(rec.SuggestedArtworks, SuggestedArtwork{
				ArtworkID: item.ID,
				Reason:    "adds to reach optimal size",
			})
		}
		return []Recommendation{rec}

	case current > size.Max:
		ranked := slices.Clone(catalogue.Items)
		slices.SortStableFunc(ranked, func(a, b Item) int {
			return cmp.Compare(a.performance(), b.performance())
		})
		rec := Recommendation{
			Type:        RecommendationRemoveArtwork,
			Priority:    PriorityMedium,
			Impact:      trimImpact,
			Title:       "Trim this catalogue",
			Description: fmt.Sprintf("This catalogue has %d works, above the recommended maximum of %d.", current, size.Max),
			Reason:      "focused catalogues hold browser attention longer",
		}
		for _, item := range ranked[:current-size.Max] {
			rec.SuggestedArtworks = append(rec.SuggestedArtworks, SuggestedArtwork{
				ArtworkID: item.ID,
				Reason:    "lowest engagement in this catalogue",
			})
		}
		return []Recommendation{rec}

	default:
		return []Recommendation{{
			Type:        RecommendationMaintain,
			Priority:    PriorityLow,
			Title:       "Catalogue size is on target",
			Description: fmt.Sprintf("%d works sits comfortably in the recommended %d to %d range.", current, size.Min, size.Max),
			Reason:      fmt.Sprintf("the ideal size for this catalogue is around %d works", size.Ideal),
		}}
	}
}

// reorderRecommendations proposes spreading out clustered works, one
// recommendation per dominating category. Only groups with more than
// two works are worth rearranging.
func reorderRecommendations(catalogue Catalogue, imbalance ImbalanceSet) []Recommendation {
	groups := []struct {
		facet      Facet
		categories []string
	}{
		{FacetMedium, imbalance.Mediums},
		{FacetPriceRange, imbalance.PriceRanges},
		{FacetStyle, imbalance.Styles},
		{FacetColor, imbalance.Colors},
	}

	itemCount := len(catalogue.Items)
	var recs []Recommendation
	for _, group := range groups {
		for _, category := range group.categories {
			members := itemsInCategory(catalogue.Items, group.facet, category)
			if len(members) <= 2 {
				continue
			}
			moves := normalizeMoves(spreadMoves(group.facet, category, members, itemCount), itemCount)
			if len(moves) == 0 {
				continue
			}
			recs = append(recs, Recommendation{
				Type:            RecommendationReorder,
				Priority:        PriorityMedium,
				Impact:          reorderImpact,
				Title:           fmt.Sprintf("Spread out %s works", category),
				Description:     fmt.Sprintf("%d of %d works share the same %s; spacing them out keeps the catalogue varied as visitors scroll.", len(members), itemCount, group.facet.label()),
				Reason:          fmt.Sprintf("%s dominates this catalogue", category),
				PositionChanges: moves,
			})
		}
	}
	return recs
}

// itemsInCategory returns the items matching a facet category in
// display order. For colors an item matches when it carries the color.
func itemsInCategory(items []Item, facet Facet, category string) []Item {
	var members []Item
	for _, item := range items {
		var match bool
		switch facet {
		case FacetMedium:
			match = item.Medium == category
		case FacetStyle:
			match = item.Style == category
		case FacetPriceRange:
			match = item.Price != nil && PriceRangeFor(*item.Price) == category
		case FacetColor:
			match = slices.Contains(item.Colors, category)
		}
		if match {
			members = append(members, item)
		}
	}
	return members
}

// spreadMoves proposes new positions for every group member beyond the
// first two. Mediums shift excess works past the catalogue midpoint,
// price clusters past the first third, and styles and colors spread
// evenly across the whole catalogue.
func spreadMoves(facet Facet, category string, members []Item, itemCount int) []PositionChange {
	excess := members[2:]
	moves := make([]PositionChange, 0, len(excess))
	for i, item := range excess {
		var target int
		switch facet {
		case FacetMedium:
			target = itemCount/2 + i
		case FacetPriceRange:
			target = itemCount/3 + i
		default:
			target = itemCount / (len(excess) + 1) * (i + 1)
		}
		moves = append(moves, PositionChange{
			ArtworkID:         item.ID,
			CurrentPosition:   item.Position,
			SuggestedPosition: target,
			Reason:            fmt.Sprintf("spreads %s works more evenly", category),
		})
	}
	return moves
}

// normalizeMoves makes heuristic targets applicable: clamp into the
// catalogue bounds, skip moves that keep an item where it is, and
// advance duplicate targets to the next free position, wrapping to the
// lowest free slot.
func normalizeMoves(moves []PositionChange, itemCount int) []PositionChange {
	taken := make(map[int]bool, len(moves))
	normalized := make([]PositionChange, 0, len(moves))
	for _, move := range moves {
		target := max(0, min(move.SuggestedPosition, itemCount-1))
		for taken[target] {
			target++
			if target >= itemCount {
				target = 0
			}
		}
		if target == move.CurrentPosition {
			continue
		}
		taken[target] = true
		move.SuggestedPosition = target
		normalized = append(normalized, move)
	}
	return normalized
}
