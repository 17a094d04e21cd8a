package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/galleriaapp/galleria-server/internal/domain"
	"github.com/galleriaapp/galleria-server/internal/sse"
)

// Key prefixes for BadgerDB.
const (
	artworkPrefix = "artwork:"

	// Index key: artist ID -> JSON list of artwork IDs.
	artworksByArtistPrefix = "idx:artworks:artist:"
)

var (
	// ErrArtworkNotFound is returned when an artwork is not found in the store.
	ErrArtworkNotFound = errors.New("artwork not found")
	// ErrDuplicateArtwork is returned when trying to create an artwork that already exists.
	ErrDuplicateArtwork = errors.New("artwork already exists")
)

// CreateArtwork creates a new artwork in the store.
func (s *Store) CreateArtwork(_ context.Context, artwork *domain.Artwork) error {
	key := []byte(artworkPrefix + artwork.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check artwork exists: %w", err)
	}
	if exists {
		return ErrDuplicateArtwork
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(artwork)
		if err != nil {
			return fmt.Errorf("marshal artwork: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		indexKey := []byte(artworksByArtistPrefix + artwork.ArtistID)
		var artworkIDs []string

		item, err := txn.Get(indexKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &artworkIDs)
			})
			if err != nil {
				return err
			}
		}

		artworkIDs = append(artworkIDs, artwork.ID)
		indexData, err := json.Marshal(artworkIDs)
		if err != nil {
			return err
		}

		return txn.Set(indexKey, indexData)
	})
	if err != nil {
		return fmt.Errorf("create artwork: %w", err)
	}

	s.eventEmitter.Emit(sse.NewArtworkCreatedEvent(artwork))

	if s.logger != nil {
		s.logger.Info("artwork created", "id", artwork.ID, "title", artwork.Title, "artist_id", artwork.ArtistID)
	}
	return nil
}

// GetArtwork retrieves an artwork by ID.
func (s *Store) GetArtwork(_ context.Context, id string) (*domain.Artwork, error) {
	key := []byte(artworkPrefix + id)

	var artwork domain.Artwork
	if err := s.get(key, &artwork); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("get artwork: %w", err)
	}

	return &artwork, nil
}

// GetArtworksBatch retrieves multiple artworks in a single transaction.
// Missing IDs are skipped rather than failing the whole batch, so the
// result preserves input order but may be shorter than ids.
func (s *Store) GetArtworksBatch(_ context.Context, ids []string) ([]*domain.Artwork, error) {
	artworks := make([]*domain.Artwork, 0, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			key := buildKey(artworkPrefix, id)

			item, err := txn.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				releaseKey(key)
				if s.logger != nil {
					s.logger.Warn("artwork missing from batch", "id", id)
				}
				continue
			}
			if err != nil {
				releaseKey(key)
				return err
			}

			err = item.Value(func(val []byte) error {
				var artwork domain.Artwork
				if err := json.Unmarshal(val, &artwork); err != nil {
					return err
				}
				artworks = append(artworks, &artwork)
				return nil
			})
			releaseKey(key)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get artworks batch: %w", err)
	}

	return artworks, nil
}

// UpdateArtwork updates an existing artwork in the store. The artist
// association is immutable, so no index maintenance is needed.
func (s *Store) UpdateArtwork(_ context.Context, artwork *domain.Artwork) error {
	key := []byte(artworkPrefix + artwork.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check artwork exists: %w", err)
	}
	if !exists {
		return ErrArtworkNotFound
	}

	if err := s.set(key, artwork); err != nil {
		return fmt.Errorf("update artwork: %w", err)
	}

	s.eventEmitter.Emit(sse.NewArtworkUpdatedEvent(artwork))

	if s.logger != nil {
		s.logger.Info("artwork updated", "id", artwork.ID, "title", artwork.Title)
	}
	return nil
}

// DeleteArtwork deletes an artwork and removes it from any catalogues
// that reference it.
func (s *Store) DeleteArtwork(ctx context.Context, id string) error {
	artwork, err := s.GetArtwork(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(artworkPrefix + id)); err != nil {
			return err
		}

		indexKey := []byte(artworksByArtistPrefix + artwork.ArtistID)
		var artworkIDs []string

		item, err := txn.Get(indexKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &artworkIDs)
		})
		if err != nil {
			return err
		}

		artworkIDs = slices.DeleteFunc(artworkIDs, func(aid string) bool {
			return aid == id
		})

		indexData, err := json.Marshal(artworkIDs)
		if err != nil {
			return err
		}

		return txn.Set(indexKey, indexData)
	})
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	// Membership cleanup happens outside the delete transaction. Only the
	// owning artist's catalogues can reference the artwork.
	catalogues, err := s.ListCataloguesByArtist(ctx, artwork.ArtistID)
	if err != nil {
		return fmt.Errorf("list catalogues: %w", err)
	}
	for _, catalogue := range catalogues {
		if catalogue.RemoveArtwork(id) {
			if err := s.UpdateCatalogue(ctx, catalogue); err != nil {
				return fmt.Errorf("remove artwork from catalogue %s: %w", catalogue.ID, err)
			}
		}
	}

	s.eventEmitter.Emit(sse.NewArtworkDeletedEvent(id))

	if s.logger != nil {
		s.logger.Info("artwork deleted", "id", id)
	}
	return nil
}

// ListArtworksByArtist returns all artworks for a given artist.
func (s *Store) ListArtworksByArtist(ctx context.Context, artistID string) ([]*domain.Artwork, error) {
	artworkIDs, err := s.ListArtworkIDsByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	artworks := make([]*domain.Artwork, 0, len(artworkIDs))
	for _, id := range artworkIDs {
		artwork, err := s.GetArtwork(ctx, id)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to get artwork", "id", id, "error", err)
			}
			continue
		}
		artworks = append(artworks, artwork)
	}
	return artworks, nil
}

// ListArtworkIDsByArtist returns the IDs of all artworks for a given artist.
func (s *Store) ListArtworkIDsByArtist(_ context.Context, artistID string) ([]string, error) {
	indexKey := []byte(artworksByArtistPrefix + artistID)

	var artworkIDs []string

	err := s.get(indexKey, &artworkIDs)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("get artwork index: %w", err)
	}

	return artworkIDs, nil
}

// ListArtworks returns a page of artworks ordered by key.
func (s *Store) ListArtworks(_ context.Context, params PaginationParams) (*PaginatedResult[*domain.Artwork], error) {
	params.Validate()

	var artworks []*domain.Artwork
	var hasMore bool

	prefix := []byte(artworkPrefix)

	startKey, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchSize = params.Limit + 1 // One extra to detect more pages

		it := txn.NewIterator(opts)
		defer it.Close()

		if startKey != "" {
			it.Seek([]byte(startKey))
			// Skip the cursor key itself, it was returned on the previous page.
			if it.Valid() && string(it.Item().Key()) == startKey {
				it.Next()
			}
		} else {
			it.Seek(prefix)
		}

		count := 0
		for ; it.ValidForPrefix(prefix) && count <= params.Limit; it.Next() {
			if count == params.Limit {
				hasMore = true
				break
			}

			err := it.Item().Value(func(val []byte) error {
				var artwork domain.Artwork
				if err := json.Unmarshal(val, &artwork); err != nil {
					return err
				}
				artworks = append(artworks, &artwork)
				return nil
			})
			if err != nil {
				return err
			}

			count++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}

	result := &PaginatedResult[*domain.Artwork]{
		Items:   artworks,
		HasMore: hasMore,
	}

	if hasMore && len(artworks) > 0 {
		result.NextCursor = EncodeCursor(artworkPrefix + artworks[len(artworks)-1].ID)
	}

	return result, nil
}

// CountArtworks returns the total number of artworks in the store.
func (s *Store) CountArtworks(_ context.Context) (int, error) {
	count := 0
	prefix := []byte(artworkPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count artworks: %w", err)
	}

	return count, nil
}

// IncrementEngagement atomically increments one engagement counter on an
// artwork and returns the updated artwork.
func (s *Store) IncrementEngagement(_ context.Context, id string, kind domain.EngagementKind) (*domain.Artwork, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown engagement kind: %s", kind)
	}

	var artwork domain.Artwork

	// Plain key allocation here: the transaction retains references to
	// keys passed to Set, so a pooled buffer cannot be reused safely.
	key := []byte(artworkPrefix + id)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &artwork)
		})
		if err != nil {
			return err
		}

		switch kind {
		case domain.EngagementView:
			artwork.Views++
		case domain.EngagementLike:
			artwork.Likes++
		case domain.EngagementInquiry:
			artwork.Inquiries++
		}

		data, err := json.Marshal(&artwork)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("increment engagement: %w", err)
	}

	s.eventEmitter.Emit(sse.NewEngagementRecordedEvent(&artwork, kind))

	if s.logger != nil {
		s.logger.Debug("engagement recorded", "id", id, "kind", string(kind))
	}
	return &artwork, nil
}
