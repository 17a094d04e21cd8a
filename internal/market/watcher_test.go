package market

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, path string) *Watcher {
	t.Helper()

	w, err := NewWatcher(path, discardLogger())
	require.NoError(t, err)
	w.settle = 50 * time.Millisecond
	t.Cleanup(func() { w.Stop() })

	return w
}

func TestWatcherSignalsOnSnapshotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.db")

	w := newTestWatcher(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte("snapshot"), 0644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change signal")
	}
}

func TestWatcherSignalsOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.db")
	tmpPath := filepath.Join(dir, "market.db.tmp")

	w := newTestWatcher(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(tmpPath, []byte("snapshot"), 0644))
	require.NoError(t, os.Rename(tmpPath, path))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change signal")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.db")

	w := newTestWatcher(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0644))

	select {
	case <-w.Changes():
		t.Fatal("unexpected signal for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.db")

	w := newTestWatcher(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("snapshot"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change signal")
	}

	select {
	case <-w.Changes():
		t.Fatal("burst produced a second signal")
	case <-time.After(300 * time.Millisecond):
	}
}
