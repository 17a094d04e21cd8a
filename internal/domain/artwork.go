package domain

import "time"

// Artwork represents a single piece in an artist's inventory. Facet fields
// (medium, style, colors, price, size category) are categorical attributes
// the curation engine analyzes; none of them are required.
type Artwork struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	ArtistID    string    `json:"artist_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"` // Markdown
	Medium      string    `json:"medium,omitempty"`
	Style       string    `json:"style,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Colors      []string  `json:"colors,omitempty"`     // Dominant colors, zero or more
	Dimensions  string    `json:"dimensions,omitempty"` // Raw "W x H" string as entered
	// SizeCategory is derived from Dimensions once at ingestion; empty when
	// the dimensions are missing or unparseable.
	SizeCategory string `json:"size_category,omitempty"`
	ImagePath    string `json:"image_path,omitempty"`
	BlurHash     string `json:"blur_hash,omitempty"`
	Views        int64  `json:"views"`
	Likes        int64  `json:"likes"`
	Inquiries    int64  `json:"inquiries"`
	Archived     bool   `json:"archived"`
}

// HasPrice reports whether the artwork has a listed price.
func (a *Artwork) HasPrice() bool {
	return a.Price != nil
}

// EngagementKind names a counter on an artwork.
type EngagementKind string

// Engagement counters tracked per artwork.
const (
	EngagementView    EngagementKind = "view"
	EngagementLike    EngagementKind = "like"
	EngagementInquiry EngagementKind = "inquiry"
)

// Valid reports whether k is a known engagement kind.
func (k EngagementKind) Valid() bool {
	switch k {
	case EngagementView, EngagementLike, EngagementInquiry:
		return true
	}
	return false
}
