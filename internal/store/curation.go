package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"
)

const (
	analysisPrefix          = "analysis:"
	curationDistributionKey = "curation:distribution"
	curationPeersPrefix     = "curation:peers:"

	// Both caches derive from the same market snapshot, so they share a
	// TTL. The snapshot watcher invalidates them eagerly on reload; the
	// TTL is a backstop.
	curationCacheDuration = time.Hour
)

// CachedDistribution wraps a market-derived ideal distribution with cache info.
type CachedDistribution struct {
	FetchedAt    time.Time             `json:"fetched_at"`
	Distribution curation.Distribution `json:"distribution"`
}

// CachedPeerSizes wraps peer catalogue sizes with cache info.
type CachedPeerSizes struct {
	FetchedAt time.Time            `json:"fetched_at"`
	Type      domain.CatalogueType `json:"type"`
	Sizes     []int                `json:"sizes"`
}

// StoredAnalysis wraps a curation analysis with the time it was generated.
// One analysis is kept per catalogue; saving replaces the previous one.
type StoredAnalysis struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Analysis    *curation.Analysis `json:"analysis"`
}

// GetCachedDistribution retrieves the cached ideal distribution.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedDistribution(ctx context.Context) (*CachedDistribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(curationDistributionKey)

	var cached CachedDistribution
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached distribution: %w", err)
	}

	// Check if expired
	if time.Since(cached.FetchedAt) > curationCacheDuration {
		return nil, nil // Treat as cache miss
	}

	return &cached, nil
}

// SetCachedDistribution stores the ideal distribution in cache.
func (s *Store) SetCachedDistribution(ctx context.Context, dist curation.Distribution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := CachedDistribution{
		Distribution: dist,
		FetchedAt:    time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal cached distribution: %w", err)
	}

	key := []byte(curationDistributionKey)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetCachedPeerSizes retrieves cached peer catalogue sizes for a type.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedPeerSizes(ctx context.Context, catalogueType domain.CatalogueType) (*CachedPeerSizes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Appendf(nil, "%s%s", curationPeersPrefix, catalogueType)

	var cached CachedPeerSizes
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached peer sizes: %w", err)
	}

	// Check if expired
	if time.Since(cached.FetchedAt) > curationCacheDuration {
		return nil, nil
	}

	return &cached, nil
}

// SetCachedPeerSizes stores peer catalogue sizes in cache.
func (s *Store) SetCachedPeerSizes(ctx context.Context, catalogueType domain.CatalogueType, sizes []int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := CachedPeerSizes{
		Sizes:     sizes,
		FetchedAt: time.Now(),
		Type:      catalogueType,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal cached peer sizes: %w", err)
	}

	key := fmt.Appendf(nil, "%s%s", curationPeersPrefix, catalogueType)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// InvalidateCurationCaches removes the cached distribution and all
// cached peer sizes. Called when the market snapshot reloads.
func (s *Store) InvalidateCurationCaches(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(curationDistributionKey))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		// Collect keys first; the iterator must be closed before deletes.
		prefix := []byte(curationPeersPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate curation caches: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("curation caches invalidated")
	}
	return nil
}

// SaveAnalysis stores the analysis for a catalogue, replacing any
// previous one.
func (s *Store) SaveAnalysis(ctx context.Context, analysis *curation.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := StoredAnalysis{
		Analysis:    analysis,
		GeneratedAt: time.Now(),
	}

	key := []byte(analysisPrefix + analysis.CatalogueID)

	if err := s.set(key, stored); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("analysis saved",
			"catalogue_id", analysis.CatalogueID,
			"score", analysis.Score,
			"recommendations", len(analysis.Recommendations))
	}
	return nil
}

// GetAnalysis retrieves the stored analysis for a catalogue.
// Returns nil, nil if no analysis has been generated.
func (s *Store) GetAnalysis(ctx context.Context, catalogueID string) (*StoredAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(analysisPrefix + catalogueID)

	var stored StoredAnalysis
	if err := s.get(key, &stored); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analysis: %w", err)
	}

	return &stored, nil
}
