package providers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/galleriaapp/galleria-server/internal/config"
	"github.com/galleriaapp/galleria-server/internal/logger"
	"github.com/galleriaapp/galleria-server/internal/market"
	"github.com/galleriaapp/galleria-server/internal/service"
)

// MarketSourceHandle wraps the snapshot source with shutdown capability.
type MarketSourceHandle struct {
	*market.Source
}

// Shutdown implements do.Shutdownable.
func (h *MarketSourceHandle) Shutdown() error {
	return h.Close()
}

// ProvideMarketSource provides the marketplace snapshot source. The
// source attempts an initial load itself; a missing snapshot is not
// fatal and the analyzer falls back to the static distribution until
// one arrives.
func ProvideMarketSource(i do.Injector) (*MarketSourceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	source := market.NewSource(cfg.Market.SnapshotPath, log.Logger)

	return &MarketSourceHandle{Source: source}, nil
}

// SnapshotWatcherHandle wraps the snapshot watcher with shutdown capability.
// The watcher is nil when watching is disabled or unavailable.
type SnapshotWatcherHandle struct {
	*market.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SnapshotWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideSnapshotWatcher provides the filesystem watcher that reloads
// the market snapshot when the exported file settles after a change.
func ProvideSnapshotWatcher(i do.Injector) (*SnapshotWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	marketService := do.MustInvoke[*service.MarketService](i)

	if !cfg.Market.WatchSnapshot {
		log.Info("snapshot watching disabled by configuration")
		return &SnapshotWatcherHandle{}, nil
	}

	// The snapshot may not exist yet; its directory has to.
	if err := os.MkdirAll(filepath.Dir(cfg.Market.SnapshotPath), 0o755); err != nil {
		log.Warn("snapshot watching unavailable", "error", err)
		return &SnapshotWatcherHandle{}, nil
	}

	w, err := market.NewWatcher(cfg.Market.SnapshotPath, log.Logger)
	if err != nil {
		// Non-fatal: the admin reload endpoint still works.
		log.Warn("snapshot watching unavailable", "error", err)
		return &SnapshotWatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	go func() {
		for {
			select {
			case <-w.Changes():
				if _, err := marketService.Reload(ctx); err != nil {
					log.Warn("snapshot reload failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return &SnapshotWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}
