package domain

import (
	"slices"
	"time"
)

// CatalogueType describes what a catalogue is for. The type drives size
// benchmarks: peer catalogues of the same type set the ideal item count.
type CatalogueType string

// Catalogue types.
const (
	CatalogueShowcase   CatalogueType = "showcase"
	CataloguePortfolio  CatalogueType = "portfolio"
	CatalogueExhibition CatalogueType = "exhibition"
	CatalogueCollection CatalogueType = "collection"
	CatalogueSeries     CatalogueType = "series"
	CatalogueMixed      CatalogueType = "mixed"
)

// Valid reports whether t is a known catalogue type.
func (t CatalogueType) Valid() bool {
	switch t {
	case CatalogueShowcase, CataloguePortfolio, CatalogueExhibition,
		CatalogueCollection, CatalogueSeries, CatalogueMixed:
		return true
	}
	return false
}

// Catalogue is an ordered, curated selection of one artist's artworks.
// ArtworkIDs carries the presentation order: slice index is the position.
type Catalogue struct {
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ID          string        `json:"id"`
	ArtistID    string        `json:"artist_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Type        CatalogueType `json:"type"`
	ArtworkIDs  []string      `json:"artwork_ids"`
}

// AddArtwork appends an artwork ID if not already present.
func (c *Catalogue) AddArtwork(artworkID string) bool {
	if slices.Contains(c.ArtworkIDs, artworkID) {
		return false
	}
	c.ArtworkIDs = append(c.ArtworkIDs, artworkID)
	return true
}

// RemoveArtwork removes an artwork ID, closing the position gap.
func (c *Catalogue) RemoveArtwork(artworkID string) bool {
	for i, id := range c.ArtworkIDs {
		if id == artworkID {
			c.ArtworkIDs = append(c.ArtworkIDs[:i], c.ArtworkIDs[i+1:]...)
			return true
		}
	}
	return false
}

// ContainsArtwork checks if an artwork ID is in this catalogue.
func (c *Catalogue) ContainsArtwork(artworkID string) bool {
	return slices.Contains(c.ArtworkIDs, artworkID)
}

// PositionOf returns the position of an artwork, or -1 if absent.
func (c *Catalogue) PositionOf(artworkID string) int {
	return slices.Index(c.ArtworkIDs, artworkID)
}

// MoveArtwork relocates an artwork to the given position. Positions outside
// [0, len-1] are clamped. Returns false if the artwork is not present.
func (c *Catalogue) MoveArtwork(artworkID string, position int) bool {
	from := slices.Index(c.ArtworkIDs, artworkID)
	if from == -1 {
		return false
	}

	if position < 0 {
		position = 0
	}
	if max := len(c.ArtworkIDs) - 1; position > max {
		position = max
	}
	if position == from {
		return true
	}

	c.ArtworkIDs = append(c.ArtworkIDs[:from], c.ArtworkIDs[from+1:]...)
	c.ArtworkIDs = slices.Insert(c.ArtworkIDs, position, artworkID)
	return true
}
