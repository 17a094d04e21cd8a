package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/service"
)

func TestGetMarketDistribution_StaticFallback(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/market/distribution")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[curation.Distribution]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	// No snapshot is loaded, so the built-in distribution is served.
	assert.True(t, envelope.Success)
	assert.Equal(t, "static-v1", envelope.Data.Version)
	require.Len(t, envelope.Data.Mediums, 8)
	assert.Equal(t, "oil", envelope.Data.Mediums[0])
	assert.Len(t, envelope.Data.Styles, 6)
	assert.Len(t, envelope.Data.PriceRanges, 4)
	assert.Len(t, envelope.Data.Colors, 8)
	assert.Equal(t, []string{"small", "medium", "large", "extra-large"}, envelope.Data.Sizes)
}

func TestGetMarketStatus_NoSnapshot(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/market/status")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[service.MarketStatus]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.False(t, envelope.Data.Available)
	assert.False(t, envelope.Data.Reloading)
	assert.Empty(t, envelope.Data.LoadID)
	assert.Zero(t, envelope.Data.ItemCount)
	assert.Zero(t, envelope.Data.PeerCount)
	assert.Contains(t, envelope.Data.Path, "market.db")
}

func TestReloadMarketSnapshot_MissingFile(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/admin/market/reload")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, EnvelopeVersion, envelope.V)
	assert.False(t, envelope.Success)
	assert.Equal(t, "UNAVAILABLE", envelope.Code)
	assert.Equal(t, "Market snapshot unavailable", envelope.Message)
}
