package market

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultSettleDelay is how long the snapshot must stay quiet after a
// change before a notification fires. Exports are usually replaced
// atomically; the delay absorbs slow copies.
const defaultSettleDelay = 2 * time.Second

// Watcher signals when the market snapshot file settles after a
// change. It only observes the filesystem; consumers decide what a
// reload involves.
type Watcher struct {
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	path    string
	settle  time.Duration

	mu    sync.Mutex
	timer *time.Timer

	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher watches the snapshot's parent directory. The file itself
// may not exist yet.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch snapshot directory: %w", err)
	}

	return &Watcher{
		logger:  logger,
		watcher: fsw,
		path:    filepath.Clean(path),
		settle:  defaultSettleDelay,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start begins processing filesystem events until the context is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.processEvents(ctx)

	w.logger.Info("watching market snapshot", "path", w.path)
}

// Changes signals that the snapshot settled after a modification.
// Signals are coalesced: a pending one covers any further changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Stop halts event processing and releases the filesystem watch.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("snapshot watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("snapshot changed", "op", event.Op.String())
	w.scheduleNotify()
}

// scheduleNotify restarts the settle timer, debouncing event bursts
// while the file is still being written.
func (w *Watcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, w.notify)
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
		// A pending notification already covers this change.
	}
}
