// Package market reads marketplace statistics from a sqlite snapshot.
//
// The snapshot is produced outside the server (a marketplace export
// dropped on disk) and carries a sample of marketplace items plus peer
// catalogue sizes. The source keeps a read-only handle on the current
// file and swaps it on reload.
package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"

	_ "modernc.org/sqlite"
)

// ErrSnapshotUnavailable is returned by queries when no snapshot has
// been loaded. The analysis engine degrades to its static fallbacks.
var ErrSnapshotUnavailable = errors.New("market snapshot unavailable")

// Source reads marketplace samples and peer catalogue sizes from the
// snapshot. It implements the engine's MarketSource and PeerSource.
type Source struct {
	logger *slog.Logger
	path   string

	mu        sync.RWMutex
	db        *sql.DB
	loadID    string
	loadedAt  time.Time
	itemCount int
	peerCount int
}

// Status describes the currently loaded snapshot.
type Status struct {
	LoadedAt  time.Time `json:"loaded_at,omitzero"`
	Path      string    `json:"path"`
	LoadID    string    `json:"load_id,omitempty"`
	ItemCount int       `json:"item_count"`
	PeerCount int       `json:"peer_count"`
	Available bool      `json:"available"`
}

// NewSource opens the snapshot at path. A missing or unreadable
// snapshot is not fatal: the server runs without marketplace data and
// the source reports unavailable until a reload succeeds.
func NewSource(path string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Source{logger: logger, path: path}
	if err := s.Reload(context.Background()); err != nil {
		logger.Warn("market snapshot unavailable", "path", path, "error", err)
	}
	return s
}

// Reload opens the snapshot file fresh and swaps it in, closing the
// previous handle. The table counts double as a schema probe, so a
// broken snapshot leaves the previous one in place.
func (s *Source) Reload(ctx context.Context) error {
	// Stat before opening: the sqlite driver would create an empty
	// database at a missing path.
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}

	// Single reader connection; the pragmas below are per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA query_only=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	var itemCount, peerCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM market_items`).Scan(&itemCount); err != nil {
		db.Close()
		return fmt.Errorf("count market_items: %w", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM peer_catalogues`).Scan(&peerCount); err != nil {
		db.Close()
		return fmt.Errorf("count peer_catalogues: %w", err)
	}

	loadID := "job-" + uuid.NewString()

	s.mu.Lock()
	old := s.db
	s.db = db
	s.loadID = loadID
	s.loadedAt = time.Now()
	s.itemCount = itemCount
	s.peerCount = peerCount
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}

	s.logger.Info("market snapshot loaded",
		"load_id", loadID,
		"items", itemCount,
		"peers", peerCount,
	)
	return nil
}

// Sample returns up to limit marketplace items in snapshot order. The
// limit must be positive; the analysis façade defaults it.
func (s *Source) Sample(ctx context.Context, limit int) ([]curation.MarketItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrSnapshotUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT medium, style, price_range, colors
		FROM market_items
		ORDER BY rowid
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query market_items: %w", err)
	}
	defer rows.Close()

	var items []curation.MarketItem
	for rows.Next() {
		var medium, style, priceRange, colors sql.NullString
		if err := rows.Scan(&medium, &style, &priceRange, &colors); err != nil {
			return nil, fmt.Errorf("scan market item: %w", err)
		}
		items = append(items, curation.MarketItem{
			Medium:     medium.String,
			Style:      style.String,
			PriceRange: priceRange.String,
			Colors:     splitColors(colors.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return items, nil
}

// PeerSizes returns the item counts of marketplace catalogues of the
// given type. Empty catalogues are excluded so they cannot drag the
// size optimizer's average down.
func (s *Source) PeerSizes(ctx context.Context, catalogueType domain.CatalogueType) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrSnapshotUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_count
		FROM peer_catalogues
		WHERE catalogue_type = ? AND item_count > 0
		ORDER BY rowid`, string(catalogueType))
	if err != nil {
		return nil, fmt.Errorf("query peer_catalogues: %w", err)
	}
	defer rows.Close()

	var sizes []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan peer size: %w", err)
		}
		sizes = append(sizes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return sizes, nil
}

// Status reports the loaded snapshot, if any.
func (s *Source) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		LoadedAt:  s.loadedAt,
		Path:      s.path,
		LoadID:    s.loadID,
		ItemCount: s.itemCount,
		PeerCount: s.peerCount,
		Available: s.db != nil,
	}
}

// Path returns the snapshot path being read.
func (s *Source) Path() string {
	return s.path
}

// Close releases the snapshot handle.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// splitColors parses the comma-joined colors column.
func splitColors(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	colors := make([]string, 0, len(parts))
	for _, part := range parts {
		if color := strings.TrimSpace(part); color != "" {
			colors = append(colors, color)
		}
	}
	if len(colors) == 0 {
		return nil
	}
	return colors
}
