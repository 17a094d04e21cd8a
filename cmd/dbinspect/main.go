// Package main dumps a summary of the gallery database for debugging.
//
// Usage:
//
//	DATA_PATH=~/Galleria/data go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/galleriaapp/galleria-server/internal/domain"
	"github.com/galleriaapp/galleria-server/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Galleria/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	artistNames := map[string]string{}
	artistCount := 0
	artworkCount := 0
	archivedCount := 0
	catalogueCount := 0
	hungTotal := 0
	analysisCount := 0

	err = db.View(func(txn *badger.Txn) error {
		forPrefix(txn, "artist:", func(val []byte) {
			var artist domain.Artist
			if err := json.Unmarshal(val, &artist); err != nil {
				return
			}
			artistCount++
			artistNames[artist.ID] = artist.Name
			fmt.Printf("Artist: %s (%s, %s)\n", artist.Name, artist.Slug, artist.Experience)
		})
		fmt.Println()

		forPrefix(txn, "artwork:", func(val []byte) {
			var artwork domain.Artwork
			if err := json.Unmarshal(val, &artwork); err != nil {
				return
			}
			artworkCount++
			if artwork.Archived {
				archivedCount++
			}
			// Show the first few artworks with their facets.
			if artworkCount <= 5 {
				facets := []string{}
				if artwork.Medium != "" {
					facets = append(facets, artwork.Medium)
				}
				if artwork.Style != "" {
					facets = append(facets, artwork.Style)
				}
				if artwork.SizeCategory != "" {
					facets = append(facets, artwork.SizeCategory)
				}
				fmt.Printf("Artwork: %s\n", artwork.Title)
				fmt.Printf("  Artist: %s\n", artistNames[artwork.ArtistID])
				fmt.Printf("  Facets: %s\n", strings.Join(facets, ", "))
				fmt.Printf("  Engagement: %d views, %d likes, %d inquiries\n",
					artwork.Views, artwork.Likes, artwork.Inquiries)
			}
		})
		if artworkCount > 5 {
			fmt.Printf("... and %d more artworks\n", artworkCount-5)
		}
		fmt.Println()

		forPrefix(txn, "catalogue:", func(val []byte) {
			var catalogue domain.Catalogue
			if err := json.Unmarshal(val, &catalogue); err != nil {
				return
			}
			catalogueCount++
			hungTotal += len(catalogue.ArtworkIDs)
			fmt.Printf("Catalogue: %s (%s)\n", catalogue.Name, catalogue.Type)
			fmt.Printf("  Artist: %s\n", artistNames[catalogue.ArtistID])
			fmt.Printf("  Artworks: %d\n", len(catalogue.ArtworkIDs))
		})
		fmt.Println()

		forPrefix(txn, "analysis:", func(val []byte) {
			var stored store.StoredAnalysis
			if err := json.Unmarshal(val, &stored); err != nil || stored.Analysis == nil {
				return
			}
			analysisCount++
			fmt.Printf("Analysis: catalogue %s\n", stored.Analysis.CatalogueID)
			fmt.Printf("  Score: %d\n", stored.Analysis.Score)
			fmt.Printf("  Recommendations: %d\n", len(stored.Analysis.Recommendations))
			fmt.Printf("  Generated: %s\n", stored.GeneratedAt.Format("2006-01-02 15:04:05"))
		})

		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Artists: %d\n", artistCount)
	fmt.Printf("Artworks: %d (%d archived)\n", artworkCount, archivedCount)
	fmt.Printf("Catalogues: %d\n", catalogueCount)
	fmt.Printf("Stored analyses: %d\n", analysisCount)
	if catalogueCount > 0 {
		fmt.Printf("Average catalogue size: %.1f\n", float64(hungTotal)/float64(catalogueCount))
	}
}

// forPrefix runs fn over the value of every key under prefix. Index
// keys live under idx: so entity prefixes only ever see records.
func forPrefix(txn *badger.Txn, prefix string, fn func(val []byte)) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		item := it.Item()
		if err := item.Value(func(val []byte) error {
			fn(val)
			return nil
		}); err != nil {
			log.Printf("Error reading %s: %v", string(item.Key()), err)
		}
	}
}
