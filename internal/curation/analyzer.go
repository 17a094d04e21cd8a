package curation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/galleriaapp/galleria-server/internal/domain"
)

// CatalogueSource resolves a catalogue into the engine's view,
// including resolved items and owner context.
type CatalogueSource interface {
	Catalogue(ctx context.Context, catalogueID string) (*Catalogue, error)
}

// InventorySource lists an artist's artworks outside the catalogue
// under analysis, for use as gap-filling candidates.
type InventorySource interface {
	AvailableItems(ctx context.Context, artistID string, exclude []string) ([]Item, error)
}

// PeerSource reports the item counts of comparable catalogues.
type PeerSource interface {
	PeerSizes(ctx context.Context, catalogueType domain.CatalogueType) ([]int, error)
}

// MarketSource samples marketplace items for deriving the ideal
// distribution.
type MarketSource interface {
	Sample(ctx context.Context, limit int) ([]MarketItem, error)
}

// Analysis is the complete curation report for one catalogue.
type Analysis struct {
	CatalogueID     string           `json:"catalogue_id"`
	Score           int              `json:"score"`
	Gaps            GapSet           `json:"gaps"`
	Balance         Balance          `json:"balance"`
	Recommendations []Recommendation `json:"recommendations"`
}

// DefaultSampleLimit caps how many market items a single analysis pulls
// when the caller does not set a limit.
const DefaultSampleLimit = 1000

// Analyzer runs the curation pipeline. The catalogue fetch is the only
// hard dependency; market, peer, and inventory data each degrade
// independently so a broken collaborator never blocks an analysis.
type Analyzer struct {
	catalogues  CatalogueSource
	inventory   InventorySource
	peers       PeerSource
	market      MarketSource
	sampleLimit int
	logger      *slog.Logger
}

// NewAnalyzer creates an analyzer. sampleLimit caps how many market
// items are requested per analysis; zero or negative uses the default.
func NewAnalyzer(
	catalogues CatalogueSource,
	inventory InventorySource,
	peers PeerSource,
	market MarketSource,
	sampleLimit int,
	logger *slog.Logger,
) *Analyzer {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	return &Analyzer{
		catalogues:  catalogues,
		inventory:   inventory,
		peers:       peers,
		market:      market,
		sampleLimit: sampleLimit,
		logger:      logger,
	}
}

// Analyze runs the full pipeline for one catalogue: gap detection,
// balance histograms, size optimization, scoring, and recommendations.
func (a *Analyzer) Analyze(ctx context.Context, catalogueID string) (*Analysis, error) {
	catalogue, err := a.catalogues.Catalogue(ctx, catalogueID)
	if err != nil {
		return nil, fmt.Errorf("fetch catalogue: %w", err)
	}

	a.logger.Info("analyzing catalogue",
		"catalogue_id", catalogue.ID,
		"artist_id", catalogue.ArtistID,
		"item_count", len(catalogue.Items),
	)

	inputs := a.gatherInputs(ctx, catalogue)
	return a.analyze(catalogue, inputs, DefaultOptions())
}

// AutoCurate runs the pipeline with caller-selected options and
// returns only the recommendations.
func (a *Analyzer) AutoCurate(ctx context.Context, catalogueID string, opts Options) ([]Recommendation, error) {
	catalogue, err := a.catalogues.Catalogue(ctx, catalogueID)
	if err != nil {
		return nil, fmt.Errorf("fetch catalogue: %w", err)
	}

	a.logger.Info("auto-curating catalogue",
		"catalogue_id", catalogue.ID,
		"fill_gaps", opts.FillGaps,
		"balance_distribution", opts.BalanceDistribution,
		"max_artworks", opts.MaxArtworks,
	)

	inputs := a.gatherInputs(ctx, catalogue)
	analysis, err := a.analyze(catalogue, inputs, opts)
	if err != nil {
		return nil, err
	}
	return analysis.Recommendations, nil
}

// analysisInputs holds the soft inputs of the pipeline, already
// resolved to their fallbacks where a fetch failed.
type analysisInputs struct {
	ideal     Distribution
	peerSizes []int
	pool      []Item
}

// gatherInputs fetches market sample, peer sizes, and the inventory
// pool concurrently. Failures log a warning and leave the fallback in
// place: static distribution, no peer data, nil pool.
func (a *Analyzer) gatherInputs(ctx context.Context, catalogue *Catalogue) analysisInputs {
	exclude := make([]string, 0, len(catalogue.Items))
	for _, item := range catalogue.Items {
		exclude = append(exclude, item.ID)
	}

	inputs := analysisInputs{ideal: StaticDistribution()}
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Go(func() {
		sample, err := a.market.Sample(ctx, a.sampleLimit)
		if err != nil {
			a.logger.Warn("market sample unavailable, using static distribution",
				"catalogue_id", catalogue.ID,
				"error", err,
			)
			return
		}
		ideal := DeriveDistribution(sample)
		mu.Lock()
		inputs.ideal = ideal
		mu.Unlock()
	})

	wg.Go(func() {
		sizes, err := a.peers.PeerSizes(ctx, catalogue.Type)
		if err != nil {
			a.logger.Warn("peer sizes unavailable, using type defaults",
				"catalogue_id", catalogue.ID,
				"catalogue_type", catalogue.Type,
				"error", err,
			)
			return
		}
		mu.Lock()
		inputs.peerSizes = sizes
		mu.Unlock()
	})

	wg.Go(func() {
		pool, err := a.inventory.AvailableItems(ctx, catalogue.ArtistID, exclude)
		if err != nil {
			a.logger.Warn("inventory unavailable, recommendations will omit artwork suggestions",
				"catalogue_id", catalogue.ID,
				"artist_id", catalogue.ArtistID,
				"error", err,
			)
			return
		}
		if pool == nil {
			pool = []Item{}
		}
		mu.Lock()
		inputs.pool = pool
		mu.Unlock()
	})

	wg.Wait()
	return inputs
}

func (a *Analyzer) analyze(catalogue *Catalogue, inputs analysisInputs, opts Options) (*Analysis, error) {
	gaps := DetectGaps(catalogue.Items, inputs.ideal)
	balance := ComputeBalance(catalogue.Items)
	imbalance := DetectImbalance(balance)
	size := OptimalSizeRange(catalogue.Type, catalogue.Experience, inputs.peerSizes)

	recommendations, err := GenerateRecommendations(*catalogue, gaps, imbalance, size, inputs.pool, opts)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("analysis complete",
		"catalogue_id", catalogue.ID,
		"ideal_version", inputs.ideal.Version,
		"recommendation_count", len(recommendations),
	)

	return &Analysis{
		CatalogueID:     catalogue.ID,
		Score:           Score(gaps, imbalance, len(catalogue.Items)),
		Gaps:            gaps,
		Balance:         balance,
		Recommendations: recommendations,
	}, nil
}
