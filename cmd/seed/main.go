// Package main provides a tool to seed the database with sample gallery data.
//
// It creates artists whose artworks spread across mediums, styles, prices,
// colors, and sizes, hangs a subset of each inventory into catalogues, and
// records engagement so curation analyses have signal to rank by.
//
// Usage:
//
//	DATA_PATH=~/Galleria/data go run ./cmd/seed
//	DATA_PATH=~/Galleria/data go run ./cmd/seed --market  # Also write market.db
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"
	"github.com/galleriaapp/galleria-server/internal/id"
	"github.com/galleriaapp/galleria-server/internal/store"
	"github.com/galleriaapp/galleria-server/internal/taxonomy"

	_ "modernc.org/sqlite"
)

var writeMarket = flag.Bool("market", false, "Also write a marketplace snapshot (market.db)")

// seedArtist describes one generated artist and the facet palette their
// inventory draws from.
type seedArtist struct {
	name       string
	bio        string
	experience domain.ExperienceLevel
	mediums    []string
	styles     []string
	colors     []string
	priceBase  float64
	works      []string
}

var seedArtists = []seedArtist{
	{
		name:       "Mara Ellison",
		bio:        "Large-format oil painter chasing coastal light.",
		experience: domain.ExperienceExpert,
		mediums:    []string{"oil", "oil", "mixed-media"},
		styles:     []string{"abstract", "impressionism"},
		colors:     []string{"blue", "white", "green"},
		priceBase:  2400,
		works: []string{
			"Tidal Memory", "Harbor Before Rain", "Salt and Slate",
			"North Passage", "Undertow Study", "Breakwater",
			"Morning Ferry", "Gull Lines",
		},
	},
	{
		name:       "Theo Brandt",
		bio:        "Digital artist and screen printer.",
		experience: domain.ExperienceIntermediate,
		mediums:    []string{"digital", "ink", "digital"},
		styles:     []string{"pop-art", "minimalism"},
		colors:     []string{"red", "yellow", "black"},
		priceBase:  350,
		works: []string{
			"Arcade Saint", "Vending Machine Gospel", "Neon Commute",
			"Static Bloom", "Midnight Kiosk", "Signal Lost",
		},
	},
	{
		name:       "Ines Okafor",
		bio:        "Watercolorist documenting market streets.",
		experience: domain.ExperienceAdvanced,
		mediums:    []string{"watercolor", "ink"},
		styles:     []string{"realism", "contemporary"},
		colors:     []string{"orange", "purple", "green"},
		priceBase:  780,
		works: []string{
			"Spice Stall at Noon", "Rain on Canvas Awnings", "The Tailor's Window",
			"Eight O'Clock Bread", "Bicycle Courier", "Closing Time",
			"Mango Season",
		},
	},
	{
		name:       "Piet Halvorsen",
		bio:        "Sculptor and photographer, mostly steel and fog.",
		experience: domain.ExperienceBeginner,
		mediums:    []string{"sculpture", "photography"},
		styles:     []string{"minimalism", "abstract"},
		colors:     []string{"black", "white"},
		priceBase:  5600,
		works: []string{
			"Weight of Quiet", "Fog Ladder", "Unfinished Horizon",
			"Monument to Nobody", "First Frost",
		},
	},
}

// dimensionPool pairs raw dimension strings with the spread the size
// optimizer expects to see.
var dimensionPool = []string{
	"8x10", "12x16", "18x24", "24x36", "30x40", "36x48", "48x60",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Galleria/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	// Seed random for variety (Go 1.20+ auto-seeds, but explicit for clarity)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, seed := range seedArtists {
		artist, created := ensureArtist(ctx, s, seed)
		if artist == nil {
			continue
		}
		if !created {
			fmt.Printf("Artist %s already exists, skipping\n", seed.name)
			continue
		}

		fmt.Printf("\nSeeding artist: %s (%s)\n", artist.Name, artist.ID)

		artworkIDs := seedArtworks(ctx, s, rng, artist, seed)
		if len(artworkIDs) == 0 {
			continue
		}

		seedCatalogues(ctx, s, rng, artist, artworkIDs)
	}

	if *writeMarket {
		snapshotPath := filepath.Join(dataPath, "market.db")
		if err := writeMarketSnapshot(snapshotPath, rng); err != nil {
			log.Fatalf("Failed to write market snapshot: %v", err)
		}
		fmt.Printf("\nWrote market snapshot: %s\n", snapshotPath)
	}

	fmt.Println("\nSeeding complete!")
}

// ensureArtist creates the artist unless the slug is already taken.
// Returns the artist and whether it was created by this run.
func ensureArtist(ctx context.Context, s *store.Store, seed seedArtist) (*domain.Artist, bool) {
	slug := taxonomy.Slugify(seed.name)

	if existing, _ := s.GetArtistBySlug(ctx, slug); existing != nil {
		return existing, false
	}

	now := time.Now()
	artist := &domain.Artist{
		ID:         id.MustGenerate("artist"),
		Name:       seed.name,
		Slug:       slug,
		Bio:        seed.bio,
		Experience: seed.experience,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.CreateArtist(ctx, artist); err != nil {
		log.Printf("Failed to create artist %s: %v", seed.name, err)
		return nil, false
	}

	return artist, true
}

// seedArtworks creates the artist's inventory with engagement counters
// already populated, so trim recommendations have something to rank.
func seedArtworks(ctx context.Context, s *store.Store, rng *rand.Rand, artist *domain.Artist, seed seedArtist) []string {
	ids := make([]string, 0, len(seed.works))
	now := time.Now()

	for i, title := range seed.works {
		dimensions := dimensionPool[rng.Intn(len(dimensionPool))]

		// Jitter prices around the artist's base so buckets vary.
		price := seed.priceBase * (0.5 + rng.Float64()*1.5)
		price = float64(int(price/10) * 10)

		// One or two dominant colors from the artist's palette.
		colors := []string{seed.colors[rng.Intn(len(seed.colors))]}
		if rng.Float32() < 0.4 {
			second := seed.colors[rng.Intn(len(seed.colors))]
			if second != colors[0] {
				colors = append(colors, second)
			}
		}

		artwork := &domain.Artwork{
			ID:           id.MustGenerate("art"),
			ArtistID:     artist.ID,
			Title:        title,
			Description:  fmt.Sprintf("*%s* by %s.", title, artist.Name),
			Medium:       seed.mediums[rng.Intn(len(seed.mediums))],
			Style:        seed.styles[rng.Intn(len(seed.styles))],
			Price:        &price,
			Colors:       colors,
			Dimensions:   dimensions,
			SizeCategory: curation.SizeCategoryFor(dimensions),
			Views:        int64(rng.Intn(400)),
			Likes:        int64(rng.Intn(90)),
			Inquiries:    int64(rng.Intn(12)),
			CreatedAt:    now.AddDate(0, 0, -(len(seed.works) - i)),
			UpdatedAt:    now,
		}

		if err := s.CreateArtwork(ctx, artwork); err != nil {
			log.Printf("  Failed to create artwork %s: %v", title, err)
			continue
		}
		ids = append(ids, artwork.ID)
	}

	fmt.Printf("  Created %d artworks\n", len(ids))
	return ids
}

// seedCatalogues hangs most of the inventory into a portfolio and, for
// larger inventories, an exhibition with a tighter selection.
func seedCatalogues(ctx context.Context, s *store.Store, rng *rand.Rand, artist *domain.Artist, artworkIDs []string) {
	portfolio := createCatalogue(ctx, s, artist, artist.Name+" Portfolio", domain.CataloguePortfolio)
	if portfolio != nil {
		// Hang 60-90% of the inventory, leaving gaps to recommend into.
		hang := max(1, len(artworkIDs)*(6+rng.Intn(4))/10)
		for _, artworkID := range artworkIDs[:hang] {
			if _, err := s.AddArtworkToCatalogue(ctx, portfolio.ID, artworkID); err != nil {
				log.Printf("  Failed to hang artwork: %v", err)
			}
		}
		fmt.Printf("  Hung %d works in %s\n", hang, portfolio.Name)
	}

	if len(artworkIDs) < 6 {
		return
	}

	exhibition := createCatalogue(ctx, s, artist, "Selected Works", domain.CatalogueExhibition)
	if exhibition != nil {
		picks := artworkIDs[:3]
		for _, artworkID := range picks {
			if _, err := s.AddArtworkToCatalogue(ctx, exhibition.ID, artworkID); err != nil {
				log.Printf("  Failed to hang artwork: %v", err)
			}
		}
		fmt.Printf("  Hung %d works in %s\n", len(picks), exhibition.Name)
	}
}

func createCatalogue(ctx context.Context, s *store.Store, artist *domain.Artist, name string, catalogueType domain.CatalogueType) *domain.Catalogue {
	now := time.Now()
	catalogue := &domain.Catalogue{
		ID:         id.MustGenerate("cat"),
		ArtistID:   artist.ID,
		Name:       name,
		Type:       catalogueType,
		ArtworkIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.CreateCatalogue(ctx, catalogue); err != nil {
		log.Printf("  Failed to create catalogue %s: %v", name, err)
		return nil
	}
	return catalogue
}

// marketMediumWeights skews snapshot items towards the mediums real
// marketplaces list most, so derived distributions look plausible.
var marketMediumWeights = []struct {
	medium string
	weight int
}{
	{"oil", 9}, {"acrylic", 7}, {"watercolor", 6}, {"digital", 6},
	{"photography", 5}, {"mixed-media", 4}, {"sculpture", 3}, {"ink", 2},
}

var marketStyles = []string{
	"abstract", "contemporary", "impressionism", "realism",
	"minimalism", "pop-art", "surrealism",
}

var marketColors = []string{
	"blue", "green", "red", "yellow", "black", "white", "orange", "purple",
}

var marketPrices = []float64{180, 420, 760, 1400, 2800, 4200, 7600, 12000}

// writeMarketSnapshot creates or replaces the sqlite snapshot the
// server's market source reads.
func writeMarketSnapshot(path string, rng *rand.Rand) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
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
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	items := 0
	for _, mw := range marketMediumWeights {
		for range mw.weight * 3 {
			style := marketStyles[rng.Intn(len(marketStyles))]
			price := marketPrices[rng.Intn(len(marketPrices))]
			color := marketColors[rng.Intn(len(marketColors))]

			_, err := db.Exec(`
				INSERT INTO market_items (medium, style, price_range, colors)
				VALUES (?, ?, ?, ?)`,
				mw.medium, style, curation.PriceRangeFor(price), color)
			if err != nil {
				return fmt.Errorf("insert market item: %w", err)
			}
			items++
		}
	}

	peers := 0
	for _, catalogueType := range []domain.CatalogueType{
		domain.CataloguePortfolio, domain.CatalogueExhibition,
		domain.CatalogueShowcase, domain.CatalogueCollection,
	} {
		for range 8 {
			size := 6 + rng.Intn(24)
			_, err := db.Exec(`
				INSERT INTO peer_catalogues (catalogue_type, item_count)
				VALUES (?, ?)`,
				string(catalogueType), size)
			if err != nil {
				return fmt.Errorf("insert peer catalogue: %w", err)
			}
			peers++
		}
	}

	fmt.Printf("  Snapshot rows: %d items, %d peers\n", items, peers)
	return nil
}
