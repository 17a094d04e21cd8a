package api

import (
	"bytes"
	"encoding/json/v2"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galleriaapp/galleria-server/internal/market"
	"github.com/galleriaapp/galleria-server/internal/media/images"
	"github.com/galleriaapp/galleria-server/internal/service"
	"github.com/galleriaapp/galleria-server/internal/sse"
	"github.com/galleriaapp/galleria-server/internal/store"
)

// testEnvelope mirrors the versioned response envelope for decoding
// typed data in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testErrorEnvelope mirrors the coded error envelope.
type testErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a test server with all dependencies. The
// market source points at a missing snapshot so curation runs against
// the static distribution fallback.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "galleria-api-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	// Discard logs in tests.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(dbPath, nil, store.NewNoopEmitter())
	require.NoError(t, err)

	sseManager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(sseManager, logger)

	imageStorage, err := images.NewStorage(tmpDir)
	require.NoError(t, err)

	marketSource := market.NewSource(filepath.Join(tmpDir, "market.db"), logger)

	artistService := service.NewArtistService(st, logger)
	artworkService := service.NewArtworkService(st, logger)
	catalogueService := service.NewCatalogueService(st, logger)
	marketService := service.NewMarketService(st, marketSource, sseManager, logger)
	curationService := service.NewCurationService(st, marketService, sseManager, logger)
	imageService := service.NewImageService(artworkService, imageStorage, logger)

	services := &Services{
		Artist:    artistService,
		Artwork:   artworkService,
		Catalogue: catalogueService,
		Curation:  curationService,
		Market:    marketService,
		Image:     imageService,
	}

	srv := NewServer(st, services, sseManager, sseHandler, logger)

	cleanup := func() {
		_ = st.Close()           //nolint:errcheck // Cleanup function
		_ = os.RemoveAll(tmpDir) //nolint:errcheck // Cleanup function
	}

	return &testServer{
		Server:  srv,
		api:     humatest.Wrap(t, srv.api),
		cleanup: cleanup,
	}
}

// createTestArtist registers an artist through the API.
func (ts *testServer) createTestArtist(t *testing.T, name string) ArtistResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/artists", map[string]any{
		"name":       name,
		"experience": "intermediate",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Create artist failed: %s", resp.Body.String())

	var envelope testEnvelope[ArtistResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data
}

// createTestArtwork catalogues an artwork through the API with fixed
// facets. Tests that need varied facets go through the service layer.
func (ts *testServer) createTestArtwork(t *testing.T, artistID, title string) ArtworkResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/artworks", map[string]any{
		"artist_id":  artistID,
		"title":      title,
		"medium":     "oil",
		"style":      "abstract",
		"price":      250.0,
		"dimensions": "24x36",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Create artwork failed: %s", resp.Body.String())

	var envelope testEnvelope[ArtworkResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data
}

// createTestCatalogue creates a catalogue through the API.
func (ts *testServer) createTestCatalogue(t *testing.T, artistID, name string) CatalogueResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/catalogues", map[string]any{
		"artist_id": artistID,
		"name":      name,
		"type":      "portfolio",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Create catalogue failed: %s", resp.Body.String())

	var envelope testEnvelope[CatalogueResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, EnvelopeVersion, envelope.V)
	assert.True(t, envelope.Success)

	// No market snapshot in tests, so the server reports degraded with
	// the database and SSE components still healthy.
	assert.Equal(t, "degraded", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
	assert.Equal(t, "degraded", envelope.Data.Components["market"].Status)
	assert.Equal(t, "healthy", envelope.Data.Components["sse"].Status)
}

func TestServer_Routes(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "health check",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list artists",
			method:         http.MethodGet,
			path:           "/api/v1/artists",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "market distribution",
			method:         http.MethodGet,
			path:           "/api/v1/market/distribution",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			method:         http.MethodGet,
			path:           "/api/v1/nonexistent",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			ts.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestServer_JSONResponse(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Envelope Check")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artists/"+artist.ID, http.NoBody)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	// Every huma response carries the versioned envelope.
	var envelope map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
	assert.Equal(t, true, envelope["success"])

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, artist.ID, data["id"])
	assert.Contains(t, data, "slug")
	assert.Contains(t, data, "created_at")
	assert.Contains(t, data, "updated_at")
}

// Image serving tests. Uploads go through huma, the bytes come back out
// through the raw chi route.

func TestServeArtworkImage_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Image Artist")
	artwork := ts.createTestArtwork(t, artist.ID, "Harbor at Dusk")

	upload := ts.api.Post("/api/v1/artworks/"+artwork.ID+"/image",
		"Content-Type: image/jpeg",
		bytes.NewReader(createTestJPEG(t, 800, 600)))
	require.Equal(t, http.StatusOK, upload.Code, "Upload failed: %s", upload.Body.String())

	var uploaded testEnvelope[ArtworkResponse]
	err := json.Unmarshal(upload.Body.Bytes(), &uploaded)
	require.NoError(t, err)
	assert.Equal(t, "images/artworks/"+artwork.ID+"/display.jpg", uploaded.Data.ImagePath)
	assert.NotEmpty(t, uploaded.Data.BlurHash)

	req := httptest.NewRequest(http.MethodGet, "/images/artworks/"+artwork.ID+"/display.jpg", http.NoBody)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=604800", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("Content-Length"))

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.True(t, etag[0] == '"' && etag[len(etag)-1] == '"', "ETag should be quoted")

	// The stored variant re-encodes the upload, so check it decodes
	// rather than comparing bytes.
	decoded, err := jpeg.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 800, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())
}

func TestServeArtworkImage_ThumbVariant(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Thumb Artist")
	artwork := ts.createTestArtwork(t, artist.ID, "Thumb Study")

	upload := ts.api.Post("/api/v1/artworks/"+artwork.ID+"/image",
		"Content-Type: image/jpeg",
		bytes.NewReader(createTestJPEG(t, 1600, 1200)))
	require.Equal(t, http.StatusOK, upload.Code)

	req := httptest.NewRequest(http.MethodGet, "/images/artworks/"+artwork.ID+"/thumb.jpg", http.NoBody)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	decoded, err := jpeg.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, decoded.Bounds().Dx())
}

func TestServeArtworkImage_NotModified(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Cache Artist")
	artwork := ts.createTestArtwork(t, artist.ID, "Cached Piece")

	upload := ts.api.Post("/api/v1/artworks/"+artwork.ID+"/image",
		"Content-Type: image/jpeg",
		bytes.NewReader(createTestJPEG(t, 400, 400)))
	require.Equal(t, http.StatusOK, upload.Code)

	// First request gets the ETag.
	req1 := httptest.NewRequest(http.MethodGet, "/images/artworks/"+artwork.ID+"/display.jpg", http.NoBody)
	w1 := httptest.NewRecorder()
	ts.ServeHTTP(w1, req1)
	require.Equal(t, http.StatusOK, w1.Code)

	etag := w1.Header().Get("ETag")
	require.NotEmpty(t, etag)

	// Second request revalidates.
	req2 := httptest.NewRequest(http.MethodGet, "/images/artworks/"+artwork.ID+"/display.jpg", http.NoBody)
	req2.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	ts.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Empty(t, w2.Body.Bytes(), "304 response should have no body")
}

func TestServeArtworkImage_ETagConsistency(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "ETag Artist")
	artwork := ts.createTestArtwork(t, artist.ID, "Stable Piece")

	upload := ts.api.Post("/api/v1/artworks/"+artwork.ID+"/image",
		"Content-Type: image/jpeg",
		bytes.NewReader(createTestJPEG(t, 600, 600)))
	require.Equal(t, http.StatusOK, upload.Code)

	etags := make([]string, 3)
	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/images/artworks/"+artwork.ID+"/display.jpg", http.NoBody)
		w := httptest.NewRecorder()

		ts.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		etags[i] = w.Header().Get("ETag")
		require.NotEmpty(t, etags[i])
	}

	assert.Equal(t, etags[0], etags[1])
	assert.Equal(t, etags[1], etags[2])
}

func TestServeArtworkImage_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	req := httptest.NewRequest(http.MethodGet, "/images/artworks/missing-artwork/display.jpg", http.NoBody)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Raw chi routes answer in the plain envelope.
	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "image not found")
}

func TestServeArtworkImage_UnknownVariant(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	artist := ts.createTestArtist(t, "Variant Artist")
	artwork := ts.createTestArtwork(t, artist.ID, "Variant Piece")

	upload := ts.api.Post("/api/v1/artworks/"+artwork.ID+"/image",
		"Content-Type: image/jpeg",
		bytes.NewReader(createTestJPEG(t, 400, 400)))
	require.Equal(t, http.StatusOK, upload.Code)

	req := httptest.NewRequest(http.MethodGet, "/images/artworks/"+artwork.ID+"/original.jpg", http.NoBody)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// createTestJPEG renders a gradient test image.
func createTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(((x + y) * 255) / (width + height))
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	require.NoError(t, err)

	return buf.Bytes()
}
