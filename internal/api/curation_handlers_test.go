package api

import (
	"encoding/json/v2"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galleriaapp/galleria-server/internal/curation"
)

func TestGetCatalogueAnalysis_EmptyCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Analyzed Artist")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Bare Catalogue")

	resp := ts.api.Get("/api/v1/catalogues/" + catalogue.ID + "/analysis")
	require.Equal(t, http.StatusOK, resp.Code, "Analysis failed: %s", resp.Body.String())

	var envelope testEnvelope[AnalysisResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.False(t, envelope.Data.GeneratedAt.IsZero())

	analysis := envelope.Data.Analysis
	require.NotNil(t, analysis)
	assert.Equal(t, catalogue.ID, analysis.CatalogueID)

	// An empty catalogue misses every ideal category and bottoms out the
	// score.
	assert.Equal(t, 0, analysis.Score)
	assert.Len(t, analysis.Gaps.Mediums, 8)
	assert.Len(t, analysis.Gaps.Styles, 6)
	assert.Len(t, analysis.Gaps.PriceRanges, 4)
	assert.Len(t, analysis.Gaps.Sizes, 4)
	assert.Empty(t, analysis.Balance.Mediums)

	// The artist has no inventory to suggest from, so gap
	// recommendations are withheld and only the size advice fires.
	require.Len(t, analysis.Recommendations, 1)
	grow := analysis.Recommendations[0]
	assert.Equal(t, curation.RecommendationAddArtwork, grow.Type)
	assert.Equal(t, "Grow this catalogue", grow.Title)
	assert.True(t, strings.HasPrefix(grow.ID, "rec-"))
	assert.Empty(t, grow.SuggestedArtworks)
}

func TestGetCatalogueAnalysis_ServesStoredUntilFresh(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Staleness Artist")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Aging Catalogue")

	// First read computes and persists an analysis of the empty
	// catalogue.
	first := ts.api.Get("/api/v1/catalogues/" + catalogue.ID + "/analysis")
	require.Equal(t, http.StatusOK, first.Code)

	// Hang a work afterwards; the stored analysis does not know it.
	artwork := ts.createTestArtwork(t, artist.ID, "Late Addition")
	addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_id": artwork.ID,
	})
	require.Equal(t, http.StatusOK, addResp.Code)

	stale := ts.api.Get("/api/v1/catalogues/" + catalogue.ID + "/analysis")
	require.Equal(t, http.StatusOK, stale.Code)

	var staleEnvelope testEnvelope[AnalysisResponse]
	err := json.Unmarshal(stale.Body.Bytes(), &staleEnvelope)
	require.NoError(t, err)
	require.NotNil(t, staleEnvelope.Data.Analysis)
	assert.Empty(t, staleEnvelope.Data.Analysis.Balance.Mediums, "stored analysis should predate the added work")

	fresh := ts.api.Get("/api/v1/catalogues/" + catalogue.ID + "/analysis?fresh=true")
	require.Equal(t, http.StatusOK, fresh.Code)

	var freshEnvelope testEnvelope[AnalysisResponse]
	err = json.Unmarshal(fresh.Body.Bytes(), &freshEnvelope)
	require.NoError(t, err)

	analysis := freshEnvelope.Data.Analysis
	require.NotNil(t, analysis)
	require.Len(t, analysis.Balance.Mediums, 1)
	assert.Equal(t, "oil", analysis.Balance.Mediums[0].Category)
	assert.Equal(t, 1, analysis.Balance.Mediums[0].Count)
	assert.NotContains(t, analysis.Gaps.Mediums, "oil")
}

func TestGetCatalogueAnalysis_UnknownCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/catalogues/cat-missing/analysis")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "NOT_FOUND", envelope.Code)
	assert.Contains(t, envelope.Message, "not found")
}

func TestAutoCurateCatalogue_SuggestsFromInventory(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Curated Artist")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Guided Catalogue")

	// One uncatalogued oil abstract in inventory. It can fill the
	// medium, style, and size gaps; it carries no colors, so the color
	// gap has no candidate and is withheld.
	artwork := ts.createTestArtwork(t, artist.ID, "Pool Piece")

	resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/curation", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, "Auto-curate failed: %s", resp.Body.String())

	var envelope testEnvelope[AutoCurateResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, catalogue.ID, envelope.Data.CatalogueID)

	recs := envelope.Data.Recommendations
	require.Len(t, recs, 4)

	// Priority then impact ordering: grow, then medium, style, and size
	// gaps.
	assert.Equal(t, "Grow this catalogue", recs[0].Title)
	assert.Equal(t, curation.PriorityHigh, recs[0].Priority)

	assert.Equal(t, curation.RecommendationAddArtwork, recs[1].Type)
	assert.Contains(t, recs[1].Description, "medium")
	require.NotEmpty(t, recs[1].SuggestedArtworks)
	assert.Equal(t, artwork.ID, recs[1].SuggestedArtworks[0].ArtworkID)
	assert.Equal(t, "fills oil gap", recs[1].SuggestedArtworks[0].Reason)

	require.NotEmpty(t, recs[2].SuggestedArtworks)
	assert.Equal(t, "fills abstract gap", recs[2].SuggestedArtworks[0].Reason)

	require.NotEmpty(t, recs[3].SuggestedArtworks)
	assert.Equal(t, "fills large gap", recs[3].SuggestedArtworks[0].Reason)

	for _, rec := range recs {
		assert.True(t, strings.HasPrefix(rec.ID, "rec-"), "recommendation ID %q", rec.ID)
	}
}

func TestAutoCurateCatalogue_FamiliesCanBeDisabled(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Selective Artist")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Narrow Focus")
	artwork := ts.createTestArtwork(t, artist.ID, "Spare Piece")

	resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/curation", map[string]any{
		"fill_gaps":            false,
		"balance_distribution": false,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AutoCurateResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	// Size advice is always generated; everything else was switched off.
	require.Len(t, envelope.Data.Recommendations, 1)
	grow := envelope.Data.Recommendations[0]
	assert.Equal(t, "Grow this catalogue", grow.Title)
	require.NotEmpty(t, grow.SuggestedArtworks)
	assert.Equal(t, artwork.ID, grow.SuggestedArtworks[0].ArtworkID)
	assert.Equal(t, "adds to reach optimal size", grow.SuggestedArtworks[0].Reason)
}

func TestAutoCurateCatalogue_MaxArtworksTriggersTrim(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Trimming Artist")
	first := ts.createTestArtwork(t, artist.ID, "Early Work")
	second := ts.createTestArtwork(t, artist.ID, "Recent Work")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Overfull")

	for _, artworkID := range []string{first.ID, second.ID} {
		addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, addResp.Code)
	}

	resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/curation", map[string]any{
		"max_artworks":         1,
		"fill_gaps":            false,
		"balance_distribution": false,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AutoCurateResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.Len(t, envelope.Data.Recommendations, 1)
	trim := envelope.Data.Recommendations[0]
	assert.Equal(t, curation.RecommendationRemoveArtwork, trim.Type)
	assert.Equal(t, "Trim this catalogue", trim.Title)

	// Neither work has any engagement, so the earliest hung one ranks
	// lowest.
	require.Len(t, trim.SuggestedArtworks, 1)
	assert.Equal(t, first.ID, trim.SuggestedArtworks[0].ArtworkID)
	assert.Equal(t, "lowest engagement in this catalogue", trim.SuggestedArtworks[0].Reason)
}

func TestAutoCurateCatalogue_UnknownCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/catalogues/cat-missing/curation", map[string]any{})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestAnalyzeArtistCatalogues_PerCatalogueResults(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Batch Artist")
	alpha := ts.createTestCatalogue(t, artist.ID, "Alpha")
	beta := ts.createTestCatalogue(t, artist.ID, "Beta")

	resp := ts.api.Get("/api/v1/artists/" + artist.ID + "/analyses")
	require.Equal(t, http.StatusOK, resp.Code, "Batch analysis failed: %s", resp.Body.String())

	var envelope testEnvelope[ArtistAnalysesResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	// Results come back in catalogue order.
	require.Len(t, envelope.Data.Analyses, 2)
	assert.Equal(t, alpha.ID, envelope.Data.Analyses[0].CatalogueID)
	assert.Equal(t, "Alpha", envelope.Data.Analyses[0].CatalogueName)
	assert.Equal(t, beta.ID, envelope.Data.Analyses[1].CatalogueID)
	assert.Equal(t, "Beta", envelope.Data.Analyses[1].CatalogueName)

	for _, entry := range envelope.Data.Analyses {
		require.NotNil(t, entry.Analysis)
		assert.Equal(t, entry.CatalogueID, entry.Analysis.CatalogueID)
		assert.Empty(t, entry.Error)
	}
}

func TestAnalyzeArtistCatalogues_NoCatalogues(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Catalogue-less")

	resp := ts.api.Get("/api/v1/artists/" + artist.ID + "/analyses")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ArtistAnalysesResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Empty(t, envelope.Data.Analyses)
}

func TestAnalyzeArtistCatalogues_UnknownArtist(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/artists/artist-missing/analyses")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestAnalysisRateLimit_Enforced(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// Burn through the burst allowance. The limiter sits in front of
	// routing, so even 404s count.
	for range AnalysisBurst {
		resp := ts.api.Get("/api/v1/catalogues/cat-missing/analysis")
		require.Equal(t, http.StatusNotFound, resp.Code)
	}

	resp := ts.api.Get("/api/v1/catalogues/cat-missing/analysis")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Too many analysis requests")
}

func TestAnalysisRateLimit_SparesOtherRoutes(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	for range AnalysisBurst {
		resp := ts.api.Get("/api/v1/catalogues/cat-missing/analysis")
		require.Equal(t, http.StatusNotFound, resp.Code)
	}

	// CRUD traffic is not analysis traffic.
	resp := ts.api.Get("/api/v1/artists")
	assert.Equal(t, http.StatusOK, resp.Code)
}
