package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"
	domainerrors "github.com/galleriaapp/galleria-server/internal/errors"
	"github.com/galleriaapp/galleria-server/internal/sse"
	"github.com/galleriaapp/galleria-server/internal/store"
)

// CurationService runs the analysis engine over stored catalogues and
// persists each result as the catalogue's latest analysis.
type CurationService struct {
	store    *store.Store
	analyzer *curation.Analyzer
	events   *sse.Manager
	logger   *slog.Logger
	workers  int
}

// NewCurationService wires the analyzer against the store and the
// market service. The market service covers both analyzer feeds: raw
// samples pass through, peer sizes come from its hourly cache.
func NewCurationService(st *store.Store, market *MarketService, events *sse.Manager, logger *slog.Logger) *CurationService {
	if logger == nil {
		logger = slog.Default()
	}
	svc := &CurationService{
		store:   st,
		events:  events,
		logger:  logger,
		workers: min(runtime.NumCPU(), 4),
	}
	svc.analyzer = curation.NewAnalyzer(
		&storeCatalogueSource{store: st},
		&storeInventorySource{store: st},
		market,
		market,
		0,
		logger,
	)
	return svc
}

// SetWorkers overrides the batch analysis worker count. Zero or
// negative keeps the CPU-derived default.
func (s *CurationService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// AnalyzeCatalogue runs a full analysis and persists it as the
// catalogue's latest.
func (s *CurationService) AnalyzeCatalogue(ctx context.Context, catalogueID string) (*curation.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, catalogueID)
	if err != nil {
		return nil, err
	}

	s.recordAnalysis(ctx, analysis)
	return analysis, nil
}

// AutoCurate generates ranked curation recommendations without
// mutating the catalogue. Applying them is the caller's call.
func (s *CurationService) AutoCurate(ctx context.Context, catalogueID string, opts curation.Options) ([]curation.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recommendations, err := s.analyzer.AutoCurate(ctx, catalogueID, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("auto-curation completed",
		"catalogue_id", catalogueID,
		"recommendations", len(recommendations),
	)

	return recommendations, nil
}

// LatestAnalysis returns the most recently persisted analysis for a
// catalogue, or nil when none has been run yet.
func (s *CurationService) LatestAnalysis(ctx context.Context, catalogueID string) (*store.StoredAnalysis, error) {
	return s.store.GetAnalysis(ctx, catalogueID)
}

// ArtistAnalysis pairs one catalogue with its analysis outcome in a
// batch run.
type ArtistAnalysis struct {
	CatalogueID   string             `json:"catalogue_id"`
	CatalogueName string             `json:"catalogue_name"`
	Analysis      *curation.Analysis `json:"analysis,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// AnalyzeArtistCatalogues analyzes every catalogue an artist owns.
// Catalogues are processed by a bounded worker pool and results come
// back in catalogue order. One failed catalogue does not abort the
// rest; its entry carries the error instead.
func (s *CurationService) AnalyzeArtistCatalogues(ctx context.Context, artistID string) ([]ArtistAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}

	catalogues, err := s.store.ListCataloguesByArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("list catalogues: %w", err)
	}
	if len(catalogues) == 0 {
		return []ArtistAnalysis{}, nil
	}

	type job struct {
		catalogue *domain.Catalogue
		index     int
	}

	jobs := make(chan job, len(catalogues))
	results := make([]ArtistAnalysis, len(catalogues))

	workers := min(s.workers, len(catalogues))
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for j := range jobs {
				results[j.index] = s.analyzeOne(ctx, j.catalogue)
			}
		})
	}

	for i, catalogue := range catalogues {
		jobs <- job{catalogue: catalogue, index: i}
	}
	close(jobs)
	wg.Wait()

	s.logger.Info("artist catalogues analyzed",
		"artist_id", artistID,
		"catalogues", len(catalogues),
	)

	return results, nil
}

func (s *CurationService) analyzeOne(ctx context.Context, catalogue *domain.Catalogue) ArtistAnalysis {
	result := ArtistAnalysis{
		CatalogueID:   catalogue.ID,
		CatalogueName: catalogue.Name,
	}

	analysis, err := s.analyzer.Analyze(ctx, catalogue.ID)
	if err != nil {
		s.logger.Warn("catalogue analysis failed",
			"catalogue_id", catalogue.ID,
			"error", err,
		)
		result.Error = err.Error()
		return result
	}

	s.recordAnalysis(ctx, analysis)
	result.Analysis = analysis
	return result
}

// recordAnalysis persists the analysis and announces it. Persistence
// is best-effort; the analysis is already computed and returned either
// way.
func (s *CurationService) recordAnalysis(ctx context.Context, analysis *curation.Analysis) {
	if err := s.store.SaveAnalysis(ctx, analysis); err != nil {
		s.logger.Warn("failed to persist analysis",
			"catalogue_id", analysis.CatalogueID,
			"error", err,
		)
	}
	s.events.Emit(sse.NewAnalysisCompletedEvent(analysis.CatalogueID, analysis.Score, len(analysis.Recommendations)))
}

// storeCatalogueSource feeds stored catalogues to the analyzer. Unlike
// the degradable market feeds, a failure here is a hard error.
type storeCatalogueSource struct {
	store *store.Store
}

func (c *storeCatalogueSource) Catalogue(ctx context.Context, catalogueID string) (*curation.Catalogue, error) {
	catalogue, err := c.store.GetCatalogue(ctx, catalogueID)
	if err != nil {
		if errors.Is(err, store.ErrCatalogueNotFound) {
			return nil, domainerrors.NotFoundf("catalogue %s not found", catalogueID)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "fetch catalogue")
	}

	artist, err := c.store.GetArtist(ctx, catalogue.ArtistID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "fetch catalogue artist")
	}

	artworks, err := c.store.GetArtworksBatch(ctx, catalogue.ArtworkIDs)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "fetch catalogue artworks")
	}

	items := make([]domain.Artwork, 0, len(artworks))
	for _, artwork := range artworks {
		items = append(items, *artwork)
	}

	engineCatalogue := curation.NewCatalogue(*catalogue, artist.Experience, items)
	return &engineCatalogue, nil
}

// storeInventorySource feeds the artist's uncatalogued works to the
// curation pool. Archived artworks never enter the pool.
type storeInventorySource struct {
	store *store.Store
}

func (i *storeInventorySource) AvailableItems(ctx context.Context, artistID string, exclude []string) ([]curation.Item, error) {
	artworks, err := i.store.ListArtworksByArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}

	excluded := make(map[string]bool, len(exclude))
	for _, artworkID := range exclude {
		excluded[artworkID] = true
	}

	items := make([]curation.Item, 0, len(artworks))
	for _, artwork := range artworks {
		if artwork.Archived || excluded[artwork.ID] {
			continue
		}
		items = append(items, curation.NewItem(*artwork, 0))
	}

	return items, nil
}
