// Package curation analyzes catalogues against market-derived ideal
// distributions and produces gap, balance, and sizing recommendations.
package curation

import (
	"slices"

	"github.com/galleriaapp/galleria-server/internal/domain"
)

// Facet identifies one of the dimensions a catalogue is analyzed along.
type Facet string

const (
	FacetMedium       Facet = "medium"
	FacetStyle        Facet = "style"
	FacetPriceRange   Facet = "price_range"
	FacetColor        Facet = "color"
	FacetSizeCategory Facet = "size_category"
)

// label returns the human-readable singular form used in recommendation text.
func (f Facet) label() string {
	switch f {
	case FacetMedium:
		return "medium"
	case FacetStyle:
		return "style"
	case FacetPriceRange:
		return "price range"
	case FacetColor:
		return "color"
	case FacetSizeCategory:
		return "size"
	default:
		return string(f)
	}
}

// Item is the engine's view of a single artwork. Facet values are
// expected to be normalized slugs; the engine compares them as opaque
// strings. SizeCategory is derived from the dimension string exactly
// once, when the item is built.
type Item struct {
	ID           string   `json:"id"`
	Medium       string   `json:"medium,omitempty"`
	Style        string   `json:"style,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Colors       []string `json:"colors,omitempty"`
	SizeCategory string   `json:"size_category,omitempty"`
	Position     int      `json:"position"`
	Views        int64    `json:"views"`
	Likes        int64    `json:"likes"`
	Inquiries    int64    `json:"inquiries"`
}

// performance scores engagement for remove-candidate ranking. Inquiries
// weigh heaviest because they signal purchase intent.
func (i Item) performance() float64 {
	return float64(i.Views)*0.1 + float64(i.Likes)*0.3 + float64(i.Inquiries)*0.6
}

// Catalogue is the engine's view of one catalogue: its items in display
// order plus the owner context that drives size optimization.
type Catalogue struct {
	ID         string                 `json:"id"`
	ArtistID   string                 `json:"artist_id"`
	Type       domain.CatalogueType   `json:"type"`
	Experience domain.ExperienceLevel `json:"experience"`
	Items      []Item                 `json:"items"`
}

// MarketItem is one entry of the marketplace sample used to derive the
// ideal distribution. Prices arrive pre-bucketed.
type MarketItem struct {
	Medium     string   `json:"medium,omitempty"`
	Style      string   `json:"style,omitempty"`
	PriceRange string   `json:"price_range,omitempty"`
	Colors     []string `json:"colors,omitempty"`
}

// NewItem builds an engine item from a stored artwork. Position is the
// artwork's index within its catalogue.
func NewItem(artwork domain.Artwork, position int) Item {
	return Item{
		ID:           artwork.ID,
		Medium:       artwork.Medium,
		Style:        artwork.Style,
		Price:        artwork.Price,
		Colors:       slices.Clone(artwork.Colors),
		SizeCategory: SizeCategoryFor(artwork.Dimensions),
		Position:     position,
		Views:        artwork.Views,
		Likes:        artwork.Likes,
		Inquiries:    artwork.Inquiries,
	}
}

// NewCatalogue builds the engine view of a catalogue. Artworks must be
// resolved in catalogue order; positions are assigned from slice order.
func NewCatalogue(catalogue domain.Catalogue, experience domain.ExperienceLevel, artworks []domain.Artwork) Catalogue {
	items := make([]Item, 0, len(artworks))
	for i, artwork := range artworks {
		items = append(items, NewItem(artwork, i))
	}
	return Catalogue{
		ID:         catalogue.ID,
		ArtistID:   catalogue.ArtistID,
		Type:       catalogue.Type,
		Experience: experience,
		Items:      items,
	}
}
