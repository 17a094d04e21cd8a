package api

import (
	"encoding/json/v2"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCatalogues_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/catalogues")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListCataloguesResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Data.Catalogues)
}

func TestListCatalogues_SpansArtists(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.createTestArtist(t, "First Owner")
	second := ts.createTestArtist(t, "Second Owner")
	catA := ts.createTestCatalogue(t, first.ID, "Portfolio A")
	catB := ts.createTestCatalogue(t, second.ID, "Portfolio B")

	resp := ts.api.Get("/api/v1/catalogues")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListCataloguesResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.Len(t, envelope.Data.Catalogues, 2)

	ids := make([]string, len(envelope.Data.Catalogues))
	for i, catalogue := range envelope.Data.Catalogues {
		ids[i] = catalogue.ID
	}
	assert.Contains(t, ids, catA.ID)
	assert.Contains(t, ids, catB.ID)
}

func TestCreateCatalogue_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Gallery Owner")

	resp := ts.api.Post("/api/v1/catalogues", map[string]any{
		"artist_id":   artist.ID,
		"name":        "Summer Salon",
		"description": "Works from the summer residency.",
		"type":        "exhibition",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Create failed: %s", resp.Body.String())

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.True(t, strings.HasPrefix(envelope.Data.ID, "cat-"))
	assert.Equal(t, artist.ID, envelope.Data.ArtistID)
	assert.Equal(t, "Summer Salon", envelope.Data.Name)
	assert.Equal(t, "Works from the summer residency.", envelope.Data.Description)
	assert.Equal(t, "exhibition", envelope.Data.Type)
	require.NotNil(t, envelope.Data.ArtworkIDs)
	assert.Empty(t, envelope.Data.ArtworkIDs)
	assert.False(t, envelope.Data.CreatedAt.IsZero())
	assert.False(t, envelope.Data.UpdatedAt.IsZero())
}

func TestCreateCatalogue_MissingName(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Nameless")

	resp := ts.api.Post("/api/v1/catalogues", map[string]any{
		"artist_id": artist.ID,
		"type":      "portfolio",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestCreateCatalogue_InvalidType(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Typed Out")

	resp := ts.api.Post("/api/v1/catalogues", map[string]any{
		"artist_id": artist.ID,
		"name":      "Oddly Typed",
		"type":      "gallery",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestCreateCatalogue_UnknownArtist(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/catalogues", map[string]any{
		"artist_id": "artist-missing",
		"name":      "Orphan Catalogue",
		"type":      "portfolio",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestGetCatalogue_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Fetch Owner")
	created := ts.createTestCatalogue(t, artist.ID, "Fetch Me")

	resp := ts.api.Get("/api/v1/catalogues/" + created.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, created.ID, envelope.Data.ID)
	assert.Equal(t, "Fetch Me", envelope.Data.Name)
	assert.Equal(t, "portfolio", envelope.Data.Type)
}

func TestGetCatalogue_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/catalogues/cat-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, EnvelopeVersion, envelope.V)
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestUpdateCatalogue_Rename(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Rename Owner")
	created := ts.createTestCatalogue(t, artist.ID, "Old Name")

	resp := ts.api.Patch("/api/v1/catalogues/"+created.ID, map[string]any{
		"name": "New Name",
		"type": "series",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Update failed: %s", resp.Body.String())

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "New Name", envelope.Data.Name)
	assert.Equal(t, "series", envelope.Data.Type)
	assert.Equal(t, artist.ID, envelope.Data.ArtistID)
}

func TestUpdateCatalogue_EmptyName(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Blank Owner")
	created := ts.createTestCatalogue(t, artist.ID, "Keep This Name")

	resp := ts.api.Patch("/api/v1/catalogues/"+created.ID, map[string]any{
		"name": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestUpdateCatalogue_InvalidType(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Mistyped Owner")
	created := ts.createTestCatalogue(t, artist.ID, "Mistyped")

	resp := ts.api.Patch("/api/v1/catalogues/"+created.ID, map[string]any{
		"type": "anthology",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Contains(t, envelope.Message, "invalid catalogue type")
}

func TestUpdateCatalogue_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/catalogues/cat-missing", map[string]any{
		"name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteCatalogue_LeavesArtworksIntact(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Delete Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Survivor")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Doomed")

	addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_id": artwork.ID,
	})
	require.Equal(t, http.StatusOK, addResp.Code)

	resp := ts.api.Delete("/api/v1/catalogues/" + catalogue.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[MessageResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, "Catalogue deleted", envelope.Data.Message)

	getCatalogue := ts.api.Get("/api/v1/catalogues/" + catalogue.ID)
	assert.Equal(t, http.StatusNotFound, getCatalogue.Code)

	// The artwork itself survives the catalogue.
	getArtwork := ts.api.Get("/api/v1/artworks/" + artwork.ID)
	assert.Equal(t, http.StatusOK, getArtwork.Code)
}

func TestDeleteCatalogue_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Delete("/api/v1/catalogues/cat-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAddCatalogueArtwork_AppendsInOrder(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Order Owner")
	first := ts.createTestArtwork(t, artist.ID, "First")
	second := ts.createTestArtwork(t, artist.ID, "Second")
	third := ts.createTestArtwork(t, artist.ID, "Third")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Ordered")

	var envelope testEnvelope[CatalogueResponse]
	for _, artworkID := range []string{first.ID, second.ID, third.ID} {
		resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, resp.Code, "Add failed: %s", resp.Body.String())

		err := json.Unmarshal(resp.Body.Bytes(), &envelope)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{first.ID, second.ID, third.ID}, envelope.Data.ArtworkIDs)
}

func TestAddCatalogueArtwork_DuplicateIsNoOp(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Twice Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Once Only")
	catalogue := ts.createTestCatalogue(t, artist.ID, "No Repeats")

	for range 2 {
		resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artwork.ID,
		})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/catalogues/" + catalogue.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, []string{artwork.ID}, envelope.Data.ArtworkIDs)
}

func TestAddCatalogueArtwork_DifferentArtist(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	owner := ts.createTestArtist(t, "Catalogue Owner")
	other := ts.createTestArtist(t, "Other Artist")
	foreign := ts.createTestArtwork(t, other.ID, "Not Yours")
	catalogue := ts.createTestCatalogue(t, owner.ID, "Own Works Only")

	resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_id": foreign.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Equal(t, "artwork belongs to a different artist", envelope.Message)
}

func TestAddCatalogueArtwork_UnknownArtwork(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Missing Piece Owner")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Incomplete")

	resp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_id": "art-missing",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestAddCatalogueArtwork_UnknownCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Stray Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Stray")

	resp := ts.api.Post("/api/v1/catalogues/cat-missing/artworks", map[string]any{
		"artwork_id": artwork.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRemoveCatalogueArtwork_ClosesGap(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Gap Owner")
	first := ts.createTestArtwork(t, artist.ID, "Keep First")
	middle := ts.createTestArtwork(t, artist.ID, "Drop Middle")
	last := ts.createTestArtwork(t, artist.ID, "Keep Last")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Gapless")

	for _, artworkID := range []string{first.ID, middle.ID, last.ID} {
		addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, addResp.Code)
	}

	resp := ts.api.Delete("/api/v1/catalogues/" + catalogue.ID + "/artworks/" + middle.ID)
	require.Equal(t, http.StatusOK, resp.Code, "Remove failed: %s", resp.Body.String())

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, []string{first.ID, last.ID}, envelope.Data.ArtworkIDs)
}

func TestRemoveCatalogueArtwork_NotInCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Absent Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Never Added")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Empty Walls")

	resp := ts.api.Delete("/api/v1/catalogues/" + catalogue.ID + "/artworks/" + artwork.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "NOT_FOUND", envelope.Code)
	assert.Contains(t, envelope.Message, "not in catalogue")
}

func TestMoveCatalogueArtwork_Reorders(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Move Owner")
	first := ts.createTestArtwork(t, artist.ID, "Slot One")
	second := ts.createTestArtwork(t, artist.ID, "Slot Two")
	third := ts.createTestArtwork(t, artist.ID, "Slot Three")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Rearranged")

	for _, artworkID := range []string{first.ID, second.ID, third.ID} {
		addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, addResp.Code)
	}

	resp := ts.api.Patch("/api/v1/catalogues/"+catalogue.ID+"/artworks/"+third.ID, map[string]any{
		"position": 0,
	})
	require.Equal(t, http.StatusOK, resp.Code, "Move failed: %s", resp.Body.String())

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, []string{third.ID, first.ID, second.ID}, envelope.Data.ArtworkIDs)
}

func TestMoveCatalogueArtwork_ClampsBeyondEnd(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Clamp Owner")
	first := ts.createTestArtwork(t, artist.ID, "Front")
	second := ts.createTestArtwork(t, artist.ID, "Middle")
	third := ts.createTestArtwork(t, artist.ID, "Back")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Clamped")

	for _, artworkID := range []string{first.ID, second.ID, third.ID} {
		addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, addResp.Code)
	}

	// Positions past the end land on the last slot.
	resp := ts.api.Patch("/api/v1/catalogues/"+catalogue.ID+"/artworks/"+first.ID, map[string]any{
		"position": 99,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, []string{second.ID, third.ID, first.ID}, envelope.Data.ArtworkIDs)
}

func TestMoveCatalogueArtwork_NotInCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Nowhere Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Unplaced")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Fixed Order")

	resp := ts.api.Patch("/api/v1/catalogues/"+catalogue.ID+"/artworks/"+artwork.ID, map[string]any{
		"position": 0,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReplaceCatalogueArtworks_SetsExactOrder(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Replace Owner")
	first := ts.createTestArtwork(t, artist.ID, "Old First")
	second := ts.createTestArtwork(t, artist.ID, "Old Second")
	third := ts.createTestArtwork(t, artist.ID, "New Lead")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Rehung")

	for _, artworkID := range []string{first.ID, second.ID} {
		addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, addResp.Code)
	}

	resp := ts.api.Put("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_ids": []string{third.ID, first.ID},
	})
	require.Equal(t, http.StatusOK, resp.Code, "Replace failed: %s", resp.Body.String())

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, []string{third.ID, first.ID}, envelope.Data.ArtworkIDs)
}

func TestReplaceCatalogueArtworks_EmptyClears(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Clear Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Taken Down")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Bare Walls")

	addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_id": artwork.ID,
	})
	require.Equal(t, http.StatusOK, addResp.Code)

	resp := ts.api.Put("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_ids": []string{},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.NotNil(t, envelope.Data.ArtworkIDs)
	assert.Empty(t, envelope.Data.ArtworkIDs)
}

func TestReplaceCatalogueArtworks_DuplicateArtwork(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Duplicate Owner")
	artwork := ts.createTestArtwork(t, artist.ID, "Doubled")
	catalogue := ts.createTestCatalogue(t, artist.ID, "No Doubles")

	resp := ts.api.Put("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_ids": []string{artwork.ID, artwork.ID},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Contains(t, envelope.Message, "duplicate artwork")
}

func TestReplaceCatalogueArtworks_DifferentArtist(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	owner := ts.createTestArtist(t, "Strict Owner")
	other := ts.createTestArtist(t, "Interloper")
	foreign := ts.createTestArtwork(t, other.ID, "Foreign Piece")
	catalogue := ts.createTestCatalogue(t, owner.ID, "House Rules")

	resp := ts.api.Put("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_ids": []string{foreign.ID},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Contains(t, envelope.Message, "belongs to a different artist")
}

func TestReplaceCatalogueArtworks_UnknownArtwork(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Phantom Owner")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Phantom Pieces")

	resp := ts.api.Put("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
		"artwork_ids": []string{"art-missing"},
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListCatalogueArtworks_DisplayOrder(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Display Owner")
	first := ts.createTestArtwork(t, artist.ID, "Painted First")
	second := ts.createTestArtwork(t, artist.ID, "Painted Second")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Hung Backwards")

	// Hang them in reverse creation order.
	for _, artworkID := range []string{second.ID, first.ID} {
		addResp := ts.api.Post("/api/v1/catalogues/"+catalogue.ID+"/artworks", map[string]any{
			"artwork_id": artworkID,
		})
		require.Equal(t, http.StatusOK, addResp.Code)
	}

	resp := ts.api.Get("/api/v1/catalogues/" + catalogue.ID + "/artworks")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogueArtworksResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.Len(t, envelope.Data.Artworks, 2)
	assert.Equal(t, second.ID, envelope.Data.Artworks[0].ID)
	assert.Equal(t, "Painted Second", envelope.Data.Artworks[0].Title)
	assert.Equal(t, first.ID, envelope.Data.Artworks[1].ID)
	assert.Equal(t, "Painted First", envelope.Data.Artworks[1].Title)
}

func TestListCatalogueArtworks_EmptyCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Quiet Owner")
	catalogue := ts.createTestCatalogue(t, artist.ID, "Nothing Hung")

	resp := ts.api.Get("/api/v1/catalogues/" + catalogue.ID + "/artworks")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CatalogueArtworksResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Empty(t, envelope.Data.Artworks)
}

func TestListCatalogueArtworks_UnknownCatalogue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/catalogues/cat-missing/artworks")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
