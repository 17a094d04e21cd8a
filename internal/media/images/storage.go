// Package images provides artwork image processing and storage.
package images

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// Variants of a processed artwork image.
const (
	VariantDisplay = "display"
	VariantThumb   = "thumb"
)

// ValidVariant reports whether name is a known image variant.
func ValidVariant(name string) bool {
	return name == VariantDisplay || name == VariantThumb
}

// Storage manages artwork image files on disk. Each artwork gets its
// own directory holding one JPEG per variant. Thread-safe for
// concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates a Storage rooted at the metadata directory.
// Images are stored in {basePath}/images/artworks/{artworkID}/.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	storagePath := filepath.Join(basePath, "images", "artworks")

	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artwork images directory: %w", err)
	}

	return &Storage{
		basePath: storagePath,
	}, nil
}

// Save stores one variant of an artwork's image.
func (s *Storage) Save(artworkID, variant string, imgData []byte) error {
	if artworkID == "" {
		return fmt.Errorf("artwork ID cannot be empty")
	}
	if !ValidVariant(variant) {
		return fmt.Errorf("unknown image variant %q", variant)
	}
	if len(imgData) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.basePath, artworkID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create artwork directory: %w", err)
	}

	if err := os.WriteFile(s.Path(artworkID, variant), imgData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}

// Get retrieves one variant of an artwork's image.
func (s *Storage) Get(artworkID, variant string) ([]byte, error) {
	if artworkID == "" {
		return nil, fmt.Errorf("artwork ID cannot be empty")
	}
	if !ValidVariant(variant) {
		return nil, fmt.Errorf("unknown image variant %q", variant)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(artworkID, variant))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found for %s: %w", artworkID, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// Exists checks whether a variant exists for an artwork.
func (s *Storage) Exists(artworkID, variant string) bool {
	if artworkID == "" || !ValidVariant(variant) {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(artworkID, variant))
	return err == nil
}

// Delete removes every stored variant for an artwork.
func (s *Storage) Delete(artworkID string) error {
	if artworkID == "" {
		return fmt.Errorf("artwork ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(s.basePath, artworkID)); err != nil {
		return fmt.Errorf("failed to delete artwork images: %w", err)
	}

	return nil
}

// Hash computes the SHA256 of a stored variant, hex-encoded for
// ETag cache validation.
func (s *Storage) Hash(artworkID, variant string) (string, error) {
	data, err := s.Get(artworkID, variant)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Path returns the filesystem path for an artwork image variant.
func (s *Storage) Path(artworkID, variant string) string {
	return filepath.Join(s.basePath, artworkID, variant+".jpg")
}

// RelativePath returns the slash-separated path stored on the artwork
// record, relative to the metadata directory.
func RelativePath(artworkID, variant string) string {
	return path.Join("images", "artworks", artworkID, variant+".jpg")
}
