package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marten/simbridge/internal/adapters/filestore"
	"github.com/marten/simbridge/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	a := New(cfg)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestStatusBeforeProducerWrites(t *testing.T) {
	a := newTestApp(t)
	doc, err := a.Status()
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStatusReadsAndArchives(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Paths.EnsureDirs())

	store := filestore.New()
	require.NoError(t, store.Save(a.Paths.Status, ports.Document{
		"timestamp": "2026-06-01T08:30:00Z",
		"mode":      "search",
	}))

	doc, err := a.Status()
	require.NoError(t, err)
	require.NotNil(t, doc)

	snaps, err := a.History(10)
	require.NoError(t, err)
	require.Len(t, snaps, 1, "every observed status is archived")
	mode, _ := snaps[0].Doc.Mode()
	assert.Equal(t, "search", mode)
}

func TestHistoryNewestFirst(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Paths.EnsureDirs())
	store := filestore.New()

	for _, mode := range []string{"search", "approach", "deliver"} {
		require.NoError(t, store.Save(a.Paths.Status, ports.Document{"mode": mode}))
		_, err := a.Status()
		require.NoError(t, err)
	}

	snaps, err := a.History(2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	mode, _ := snaps[0].Doc.Mode()
	assert.Equal(t, "deliver", mode)
}

func TestWatchDeliversStatusWithRelativeDataDir(t *testing.T) {
	// The default config's data dir is the relative "data". Watcher events
	// carry absolute paths, so the status-path comparison inside Watch only
	// works because datadir resolves relative roots at construction.
	t.Chdir(t.TempDir())

	a := New(DefaultConfig())
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.Paths.EnsureDirs())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan ports.Document, 10)
	go a.Watch(ctx, func(doc ports.Document) { seen <- doc })
	time.Sleep(50 * time.Millisecond)

	store := filestore.New()
	require.NoError(t, store.Save(a.Paths.Status, ports.Document{"mode": "search"}))

	select {
	case doc := <-seen:
		mode, _ := doc.Mode()
		assert.Equal(t, "search", mode)
	case <-time.After(2 * time.Second):
		t.Fatal("status publish never reached the watch callback")
	}
}

func TestStatusSurvivesCorruptFile(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Paths.EnsureDirs())
	require.NoError(t, writeRaw(a.Paths.Status, `{"mode": "sea`))

	doc, err := a.Status()
	require.NoError(t, err, "torn reads are 'no data yet', not failures")
	assert.Nil(t, doc)
}
