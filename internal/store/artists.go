package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/galleriaapp/galleria-server/internal/domain"
)

// Key prefixes for BadgerDB.
const (
	artistPrefix = "artist:"

	// Index key: slug -> artist ID.
	artistsBySlugPrefix = "idx:artists:slug:"
)

var (
	// ErrArtistNotFound is returned when an artist is not found in the store.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrDuplicateArtist is returned when trying to create an artist that already exists.
	ErrDuplicateArtist = errors.New("artist already exists")
	// ErrDuplicateSlug is returned when an artist's slug is already taken.
	ErrDuplicateSlug = errors.New("artist slug already taken")
)

// CreateArtist creates a new artist in the store.
func (s *Store) CreateArtist(_ context.Context, artist *domain.Artist) error {
	key := []byte(artistPrefix + artist.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check artist exists: %w", err)
	}
	if exists {
		return ErrDuplicateArtist
	}

	slugKey := []byte(artistsBySlugPrefix + artist.Slug)
	slugTaken, err := s.exists(slugKey)
	if err != nil {
		return fmt.Errorf("check slug exists: %w", err)
	}
	if slugTaken {
		return ErrDuplicateSlug
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(artist)
		if err != nil {
			return fmt.Errorf("marshal artist: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		return txn.Set(slugKey, []byte(artist.ID))
	})
	if err != nil {
		return fmt.Errorf("create artist: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("artist created", "id", artist.ID, "name", artist.Name, "slug", artist.Slug)
	}
	return nil
}

// GetArtist retrieves an artist by ID.
func (s *Store) GetArtist(_ context.Context, id string) (*domain.Artist, error) {
	key := []byte(artistPrefix + id)

	var artist domain.Artist
	if err := s.get(key, &artist); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	return &artist, nil
}

// GetArtistBySlug retrieves an artist by their URL slug.
func (s *Store) GetArtistBySlug(ctx context.Context, slug string) (*domain.Artist, error) {
	slugKey := []byte(artistsBySlugPrefix + slug)

	var artistID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugKey)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			artistID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist slug index: %w", err)
	}

	return s.GetArtist(ctx, artistID)
}

// UpdateArtist updates an existing artist, maintaining the slug index
// when the slug changes.
func (s *Store) UpdateArtist(ctx context.Context, artist *domain.Artist) error {
	current, err := s.GetArtist(ctx, artist.ID)
	if err != nil {
		return err
	}

	if current.Slug != artist.Slug {
		slugKey := []byte(artistsBySlugPrefix + artist.Slug)
		slugTaken, err := s.exists(slugKey)
		if err != nil {
			return fmt.Errorf("check slug exists: %w", err)
		}
		if slugTaken {
			return ErrDuplicateSlug
		}
	}

	key := []byte(artistPrefix + artist.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(artist)
		if err != nil {
			return fmt.Errorf("marshal artist: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		if current.Slug != artist.Slug {
			if err := txn.Delete([]byte(artistsBySlugPrefix + current.Slug)); err != nil {
				return err
			}
			if err := txn.Set([]byte(artistsBySlugPrefix+artist.Slug), []byte(artist.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("artist updated", "id", artist.ID, "name", artist.Name)
	}
	return nil
}

// DeleteArtist deletes an artist along with their catalogues and artworks.
func (s *Store) DeleteArtist(ctx context.Context, id string) error {
	artist, err := s.GetArtist(ctx, id)
	if err != nil {
		return err
	}

	// Catalogues first so artwork deletion has no memberships left to fix up.
	catalogues, err := s.ListCataloguesByArtist(ctx, id)
	if err != nil {
		return fmt.Errorf("list catalogues: %w", err)
	}
	for _, catalogue := range catalogues {
		if err := s.DeleteCatalogue(ctx, catalogue.ID); err != nil {
			return fmt.Errorf("delete catalogue %s: %w", catalogue.ID, err)
		}
	}

	artworkIDs, err := s.ListArtworkIDsByArtist(ctx, id)
	if err != nil {
		return fmt.Errorf("list artworks: %w", err)
	}
	for _, artworkID := range artworkIDs {
		if err := s.DeleteArtwork(ctx, artworkID); err != nil {
			return fmt.Errorf("delete artwork %s: %w", artworkID, err)
		}
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(artistPrefix + id)); err != nil {
			return err
		}
		if err := txn.Delete([]byte(artistsBySlugPrefix + artist.Slug)); err != nil {
			return err
		}
		return txn.Delete([]byte(artworksByArtistPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("artist deleted", "id", id, "catalogues", len(catalogues), "artworks", len(artworkIDs))
	}
	return nil
}

// ListArtists returns all artists in the store.
func (s *Store) ListArtists(_ context.Context) ([]*domain.Artist, error) {
	var artists []*domain.Artist

	prefix := []byte(artistPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var artist domain.Artist
				if err := json.Unmarshal(val, &artist); err != nil {
					return err
				}
				artists = append(artists, &artist)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}

	return artists, nil
}
