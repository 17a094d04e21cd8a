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
	cataloguePrefix = "catalogue:"

	// Index key: artist ID -> JSON list of catalogue IDs.
	cataloguesByArtistPrefix = "idx:catalogues:artist:"
)

var (
	// ErrCatalogueNotFound is returned when a catalogue is not found in the store.
	ErrCatalogueNotFound = errors.New("catalogue not found")
	// ErrDuplicateCatalogue is returned when trying to create a catalogue that already exists.
	ErrDuplicateCatalogue = errors.New("catalogue already exists")
	// ErrArtworkNotInCatalogue is returned when an operation references an
	// artwork the catalogue does not contain.
	ErrArtworkNotInCatalogue = errors.New("artwork not in catalogue")
)

// CreateCatalogue creates a new catalogue in the store.
func (s *Store) CreateCatalogue(_ context.Context, catalogue *domain.Catalogue) error {
	key := []byte(cataloguePrefix + catalogue.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check catalogue exists: %w", err)
	}
	if exists {
		return ErrDuplicateCatalogue
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(catalogue)
		if err != nil {
			return fmt.Errorf("marshal catalogue: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		indexKey := []byte(cataloguesByArtistPrefix + catalogue.ArtistID)
		var catalogueIDs []string

		item, err := txn.Get(indexKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &catalogueIDs)
			})
			if err != nil {
				return err
			}
		}

		catalogueIDs = append(catalogueIDs, catalogue.ID)
		indexData, err := json.Marshal(catalogueIDs)
		if err != nil {
			return err
		}

		return txn.Set(indexKey, indexData)
	})
	if err != nil {
		return fmt.Errorf("create catalogue: %w", err)
	}

	s.eventEmitter.Emit(sse.NewCatalogueCreatedEvent(catalogue))

	if s.logger != nil {
		s.logger.Info("catalogue created",
			"id", catalogue.ID,
			"name", catalogue.Name,
			"type", string(catalogue.Type),
			"artist_id", catalogue.ArtistID)
	}
	return nil
}

// GetCatalogue retrieves a catalogue by ID.
func (s *Store) GetCatalogue(_ context.Context, id string) (*domain.Catalogue, error) {
	key := []byte(cataloguePrefix + id)

	var catalogue domain.Catalogue
	if err := s.get(key, &catalogue); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrCatalogueNotFound
		}
		return nil, fmt.Errorf("get catalogue: %w", err)
	}

	return &catalogue, nil
}

// UpdateCatalogue updates an existing catalogue in the store.
func (s *Store) UpdateCatalogue(_ context.Context, catalogue *domain.Catalogue) error {
	key := []byte(cataloguePrefix + catalogue.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check catalogue exists: %w", err)
	}
	if !exists {
		return ErrCatalogueNotFound
	}

	if err := s.set(key, catalogue); err != nil {
		return fmt.Errorf("update catalogue: %w", err)
	}

	s.eventEmitter.Emit(sse.NewCatalogueUpdatedEvent(catalogue))

	if s.logger != nil {
		s.logger.Info("catalogue updated", "id", catalogue.ID, "name", catalogue.Name)
	}
	return nil
}

// DeleteCatalogue deletes a catalogue and its stored analysis.
func (s *Store) DeleteCatalogue(ctx context.Context, id string) error {
	catalogue, err := s.GetCatalogue(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(cataloguePrefix + id)); err != nil {
			return err
		}

		if err := txn.Delete([]byte(analysisPrefix + id)); err != nil {
			return err
		}

		indexKey := []byte(cataloguesByArtistPrefix + catalogue.ArtistID)
		var catalogueIDs []string

		item, err := txn.Get(indexKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &catalogueIDs)
		})
		if err != nil {
			return err
		}

		catalogueIDs = slices.DeleteFunc(catalogueIDs, func(cid string) bool {
			return cid == id
		})

		indexData, err := json.Marshal(catalogueIDs)
		if err != nil {
			return err
		}

		return txn.Set(indexKey, indexData)
	})
	if err != nil {
		return fmt.Errorf("delete catalogue: %w", err)
	}

	s.eventEmitter.Emit(sse.NewCatalogueDeletedEvent(id))

	if s.logger != nil {
		s.logger.Info("catalogue deleted", "id", id)
	}
	return nil
}

// ListCataloguesByArtist returns all catalogues for a given artist.
func (s *Store) ListCataloguesByArtist(ctx context.Context, artistID string) ([]*domain.Catalogue, error) {
	indexKey := []byte(cataloguesByArtistPrefix + artistID)

	var catalogueIDs []string

	err := s.get(indexKey, &catalogueIDs)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return []*domain.Catalogue{}, nil
		}
		return nil, fmt.Errorf("get catalogue index: %w", err)
	}

	catalogues := make([]*domain.Catalogue, 0, len(catalogueIDs))
	for _, id := range catalogueIDs {
		catalogue, err := s.GetCatalogue(ctx, id)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to get catalogue", "id", id, "error", err)
			}
			continue
		}
		catalogues = append(catalogues, catalogue)
	}
	return catalogues, nil
}

// ListCatalogues returns all catalogues in the store.
func (s *Store) ListCatalogues(_ context.Context) ([]*domain.Catalogue, error) {
	var catalogues []*domain.Catalogue

	prefix := []byte(cataloguePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var catalogue domain.Catalogue
				if err := json.Unmarshal(val, &catalogue); err != nil {
					return err
				}
				catalogues = append(catalogues, &catalogue)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list catalogues: %w", err)
	}

	return catalogues, nil
}

// AddArtworkToCatalogue appends an artwork to a catalogue. Adding an
// artwork that is already present is a no-op.
func (s *Store) AddArtworkToCatalogue(ctx context.Context, catalogueID, artworkID string) (*domain.Catalogue, error) {
	catalogue, err := s.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	if !catalogue.AddArtwork(artworkID) {
		return catalogue, nil
	}

	if err := s.UpdateCatalogue(ctx, catalogue); err != nil {
		return nil, err
	}
	return catalogue, nil
}

// RemoveArtworkFromCatalogue removes an artwork from a catalogue,
// closing the position gap.
func (s *Store) RemoveArtworkFromCatalogue(ctx context.Context, catalogueID, artworkID string) (*domain.Catalogue, error) {
	catalogue, err := s.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	if !catalogue.RemoveArtwork(artworkID) {
		return nil, ErrArtworkNotInCatalogue
	}

	if err := s.UpdateCatalogue(ctx, catalogue); err != nil {
		return nil, err
	}
	return catalogue, nil
}

// MoveArtworkInCatalogue relocates an artwork to a new position within
// a catalogue. Out-of-range positions are clamped.
func (s *Store) MoveArtworkInCatalogue(ctx context.Context, catalogueID, artworkID string, position int) (*domain.Catalogue, error) {
	catalogue, err := s.GetCatalogue(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	if !catalogue.MoveArtwork(artworkID, position) {
		return nil, ErrArtworkNotInCatalogue
	}

	if err := s.UpdateCatalogue(ctx, catalogue); err != nil {
		return nil, err
	}
	return catalogue, nil
}
