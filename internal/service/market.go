package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/galleriaapp/galleria-server/internal/curation"
	"github.com/galleriaapp/galleria-server/internal/domain"
	"github.com/galleriaapp/galleria-server/internal/market"
	"github.com/galleriaapp/galleria-server/internal/sse"
	"github.com/galleriaapp/galleria-server/internal/store"
)

// MarketService fronts the marketplace snapshot with store-backed
// caching and owns the reload flow. Both the admin reload endpoint and
// the snapshot watcher funnel through Reload so cache invalidation and
// events happen exactly once per swap.
type MarketService struct {
	store       *store.Store
	source      *market.Source
	events      *sse.Manager
	logger      *slog.Logger
	sampleLimit int
}

// NewMarketService creates a new market service. A nil logger falls
// back to the default.
func NewMarketService(store *store.Store, source *market.Source, events *sse.Manager, logger *slog.Logger) *MarketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketService{
		store:       store,
		source:      source,
		events:      events,
		logger:      logger,
		sampleLimit: curation.DefaultSampleLimit,
	}
}

// SetSampleLimit overrides how many market items feed a distribution
// derivation. Zero or negative keeps the default.
func (s *MarketService) SetSampleLimit(n int) {
	if n > 0 {
		s.sampleLimit = n
	}
}

// Distribution returns the ideal facet distribution. Cached copies are
// served first, then a fresh derivation from the snapshot, then the
// static fallback when no snapshot is loaded.
func (s *MarketService) Distribution(ctx context.Context) (curation.Distribution, error) {
	cached, err := s.store.GetCachedDistribution(ctx)
	if err != nil {
		return curation.Distribution{}, fmt.Errorf("get cached distribution: %w", err)
	}
	if cached != nil {
		return cached.Distribution, nil
	}

	sample, err := s.source.Sample(ctx, s.sampleLimit)
	if err != nil {
		s.logger.Warn("market sample unavailable, serving static distribution", "error", err)
		return curation.StaticDistribution(), nil
	}

	distribution := curation.DeriveDistribution(sample)
	if err := s.store.SetCachedDistribution(ctx, distribution); err != nil {
		s.logger.Warn("failed to cache distribution", "error", err)
	}

	return distribution, nil
}

// PeerSizes returns catalogue sizes of comparable marketplace peers,
// cache-through. Implements the analyzer's peer source so batch
// analyses share one snapshot read per hour.
func (s *MarketService) PeerSizes(ctx context.Context, catalogueType domain.CatalogueType) ([]int, error) {
	cached, err := s.store.GetCachedPeerSizes(ctx, catalogueType)
	if err != nil {
		return nil, fmt.Errorf("get cached peer sizes: %w", err)
	}
	if cached != nil {
		return cached.Sizes, nil
	}

	sizes, err := s.source.PeerSizes(ctx, catalogueType)
	if err != nil {
		return nil, fmt.Errorf("fetch peer sizes: %w", err)
	}

	if err := s.store.SetCachedPeerSizes(ctx, catalogueType, sizes); err != nil {
		s.logger.Warn("failed to cache peer sizes", "error", err)
	}

	return sizes, nil
}

// Sample passes a raw market sample through from the snapshot.
// Implements the analyzer's market source. The sample itself is not
// cached: the snapshot is a local file, and the derived distribution
// carries the hour-level cache instead.
func (s *MarketService) Sample(ctx context.Context, limit int) ([]curation.MarketItem, error) {
	return s.source.Sample(ctx, limit)
}

// Reload swaps in the current snapshot file and invalidates every
// cache derived from the previous one. Returns the load ID of the new
// snapshot.
func (s *MarketService) Reload(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.events.SetReloading(true)
	defer s.events.SetReloading(false)

	if err := s.source.Reload(ctx); err != nil {
		return "", fmt.Errorf("reload market snapshot: %w", err)
	}

	if err := s.store.InvalidateCurationCaches(ctx); err != nil {
		s.logger.Warn("failed to invalidate curation caches", "error", err)
	}

	status := s.source.Status()
	s.events.Emit(sse.NewMarketReloadedEvent(status.LoadID, status.ItemCount, status.PeerCount))

	s.logger.Info("market snapshot reloaded",
		"load_id", status.LoadID,
		"items", status.ItemCount,
		"peers", status.PeerCount,
	)

	return status.LoadID, nil
}

// MarketStatus combines snapshot state with reload progress.
type MarketStatus struct {
	market.Status
	Reloading bool `json:"reloading"`
}

// Status reports current snapshot availability.
func (s *MarketService) Status() MarketStatus {
	return MarketStatus{
		Status:    s.source.Status(),
		Reloading: s.events.IsReloading(),
	}
}
