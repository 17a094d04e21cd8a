package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogueType_Valid(t *testing.T) {
	valid := []CatalogueType{
		CatalogueShowcase, CataloguePortfolio, CatalogueExhibition,
		CatalogueCollection, CatalogueSeries, CatalogueMixed,
	}
	for _, ct := range valid {
		assert.True(t, ct.Valid(), "%s should be valid", ct)
	}

	assert.False(t, CatalogueType("scrapbook").Valid())
	assert.False(t, CatalogueType("").Valid())
}

func TestExperienceLevel_Valid(t *testing.T) {
	valid := []ExperienceLevel{
		ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert,
	}
	for _, e := range valid {
		assert.True(t, e.Valid(), "%s should be valid", e)
	}

	assert.False(t, ExperienceLevel("legend").Valid())
}

func TestEngagementKind_Valid(t *testing.T) {
	assert.True(t, EngagementView.Valid())
	assert.True(t, EngagementLike.Valid())
	assert.True(t, EngagementInquiry.Valid())
	assert.False(t, EngagementKind("share").Valid())
}

func TestCatalogue_AddArtwork(t *testing.T) {
	c := &Catalogue{}

	assert.True(t, c.AddArtwork("art-1"))
	assert.True(t, c.AddArtwork("art-2"))
	assert.Equal(t, []string{"art-1", "art-2"}, c.ArtworkIDs)

	// Duplicate is a no-op.
	assert.False(t, c.AddArtwork("art-1"))
	assert.Len(t, c.ArtworkIDs, 2)
}

func TestCatalogue_RemoveArtwork(t *testing.T) {
	c := &Catalogue{ArtworkIDs: []string{"art-1", "art-2", "art-3"}}

	assert.True(t, c.RemoveArtwork("art-2"))
	assert.Equal(t, []string{"art-1", "art-3"}, c.ArtworkIDs)

	assert.False(t, c.RemoveArtwork("art-9"))
	assert.Len(t, c.ArtworkIDs, 2)
}

func TestCatalogue_ContainsArtwork(t *testing.T) {
	c := &Catalogue{ArtworkIDs: []string{"art-1"}}

	assert.True(t, c.ContainsArtwork("art-1"))
	assert.False(t, c.ContainsArtwork("art-2"))
}

func TestCatalogue_PositionOf(t *testing.T) {
	c := &Catalogue{ArtworkIDs: []string{"art-1", "art-2", "art-3"}}

	assert.Equal(t, 0, c.PositionOf("art-1"))
	assert.Equal(t, 2, c.PositionOf("art-3"))
	assert.Equal(t, -1, c.PositionOf("art-9"))
}

func TestCatalogue_MoveArtwork(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		artwork  string
		position int
		wantOK   bool
		want     []string
	}{
		{
			name:     "move forward",
			ids:      []string{"a", "b", "c", "d"},
			artwork:  "a",
			position: 2,
			wantOK:   true,
			want:     []string{"b", "c", "a", "d"},
		},
		{
			name:     "move backward",
			ids:      []string{"a", "b", "c", "d"},
			artwork:  "d",
			position: 0,
			wantOK:   true,
			want:     []string{"d", "a", "b", "c"},
		},
		{
			name:     "same position",
			ids:      []string{"a", "b", "c"},
			artwork:  "b",
			position: 1,
			wantOK:   true,
			want:     []string{"a", "b", "c"},
		},
		{
			name:     "position clamped high",
			ids:      []string{"a", "b", "c"},
			artwork:  "a",
			position: 99,
			wantOK:   true,
			want:     []string{"b", "c", "a"},
		},
		{
			name:     "position clamped low",
			ids:      []string{"a", "b", "c"},
			artwork:  "c",
			position: -4,
			wantOK:   true,
			want:     []string{"c", "a", "b"},
		},
		{
			name:     "absent artwork",
			ids:      []string{"a", "b"},
			artwork:  "z",
			position: 0,
			wantOK:   false,
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Catalogue{ArtworkIDs: append([]string(nil), tt.ids...)}

			ok := c.MoveArtwork(tt.artwork, tt.position)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, c.ArtworkIDs)
		})
	}
}
