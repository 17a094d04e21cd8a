package market

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type snapshotItem struct {
	medium     string
	style      string
	priceRange string
	colors     string
}

type snapshotPeer struct {
	catalogueType string
	itemCount     int
}

// writeSnapshot creates or replaces a snapshot database at path.
func writeSnapshot(t *testing.T, path string, items []snapshotItem, peers []snapshotPeer) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS market_items (
			medium TEXT,
			style TEXT,
			price_range TEXT,
			colors TEXT
		);
		CREATE TABLE IF NOT EXISTS peer_catalogues (
			catalogue_type TEXT NOT NULL,
			item_count INTEGER NOT NULL
		);
		DELETE FROM market_items;
		DELETE FROM peer_catalogues;
	`)
	require.NoError(t, err)

	for _, item := range items {
		_, err = db.Exec(`
			INSERT INTO market_items (medium, style, price_range, colors)
			VALUES (?, ?, ?, ?)`,
			item.medium, item.style, nullable(item.priceRange), nullable(item.colors))
		require.NoError(t, err)
	}
	for _, peer := range peers {
		_, err = db.Exec(`
			INSERT INTO peer_catalogues (catalogue_type, item_count)
			VALUES (?, ?)`,
			peer.catalogueType, peer.itemCount)
		require.NoError(t, err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func TestSourceSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	writeSnapshot(t, path, []snapshotItem{
		{medium: "oil", style: "abstract", priceRange: "under-500", colors: "blue, gold"},
		{medium: "acrylic", style: "realism"},
		{medium: "digital", style: "pop-art", priceRange: "1000-5000", colors: "red"},
	}, nil)

	source := NewSource(path, discardLogger())
	defer source.Close()

	items, err := source.Sample(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, curation.MarketItem{
		Medium:     "oil",
		Style:      "abstract",
		PriceRange: "under-500",
		Colors:     []string{"blue", "gold"},
	}, items[0])

	// Null columns come back as zero values.
	assert.Equal(t, "acrylic", items[1].Medium)
	assert.Empty(t, items[1].PriceRange)
	assert.Nil(t, items[1].Colors)
}

func TestSourceSampleLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	writeSnapshot(t, path, []snapshotItem{
		{medium: "oil", style: "abstract"},
		{medium: "acrylic", style: "realism"},
		{medium: "digital", style: "pop-art"},
	}, nil)

	source := NewSource(path, discardLogger())
	defer source.Close()

	items, err := source.Sample(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Snapshot order is preserved.
	assert.Equal(t, "oil", items[0].Medium)
	assert.Equal(t, "acrylic", items[1].Medium)
}

func TestSourcePeerSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	writeSnapshot(t, path, nil, []snapshotPeer{
		{catalogueType: "showcase", itemCount: 12},
		{catalogueType: "showcase", itemCount: 0},
		{catalogueType: "showcase", itemCount: 18},
		{catalogueType: "portfolio", itemCount: 25},
	})

	source := NewSource(path, discardLogger())
	defer source.Close()

	sizes, err := source.PeerSizes(context.Background(), domain.CatalogueShowcase)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 18}, sizes)

	sizes, err = source.PeerSizes(context.Background(), domain.CatalogueExhibition)
	require.NoError(t, err)
	assert.Empty(t, sizes)
}

func TestSourceMissingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	source := NewSource(path, discardLogger())
	defer source.Close()

	status := source.Status()
	assert.False(t, status.Available)
	assert.Empty(t, status.LoadID)

	_, err := source.Sample(context.Background(), 10)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)

	_, err = source.PeerSizes(context.Background(), domain.CatalogueShowcase)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)

	// The probe must not create an empty database at the path.
	assert.NoFileExists(t, path)
}

func TestSourceReloadPicksUpNewSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")

	source := NewSource(path, discardLogger())
	defer source.Close()
	require.False(t, source.Status().Available)

	writeSnapshot(t, path, []snapshotItem{
		{medium: "oil", style: "abstract"},
	}, []snapshotPeer{
		{catalogueType: "showcase", itemCount: 10},
	})
	require.NoError(t, source.Reload(context.Background()))

	status := source.Status()
	assert.True(t, status.Available)
	assert.Equal(t, 1, status.ItemCount)
	assert.Equal(t, 1, status.PeerCount)
	assert.True(t, strings.HasPrefix(status.LoadID, "job-"), "load id %q", status.LoadID)
	assert.False(t, status.LoadedAt.IsZero())

	firstLoad := status.LoadID
	writeSnapshot(t, path, []snapshotItem{
		{medium: "oil", style: "abstract"},
		{medium: "acrylic", style: "realism"},
	}, []snapshotPeer{
		{catalogueType: "showcase", itemCount: 10},
	})
	require.NoError(t, source.Reload(context.Background()))

	status = source.Status()
	assert.Equal(t, 2, status.ItemCount)
	assert.NotEqual(t, firstLoad, status.LoadID)
}

func TestSourceReloadRejectsBrokenSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	writeSnapshot(t, path, []snapshotItem{
		{medium: "oil", style: "abstract"},
	}, nil)

	source := NewSource(path, discardLogger())
	defer source.Close()
	require.True(t, source.Status().Available)
	firstLoad := source.Status().LoadID

	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0644))

	err := source.Reload(context.Background())
	require.Error(t, err)

	// The failed reload does not replace the loaded snapshot.
	status := source.Status()
	assert.True(t, status.Available)
	assert.Equal(t, firstLoad, status.LoadID)
}

func TestSplitColors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "blue", want: []string{"blue"}},
		{name: "multiple", raw: "blue,gold", want: []string{"blue", "gold"}},
		{name: "padded", raw: " blue , gold ", want: []string{"blue", "gold"}},
		{name: "empty parts", raw: "blue,,gold,", want: []string{"blue", "gold"}},
		{name: "only separators", raw: ", ,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitColors(tt.raw))
		})
	}
}
