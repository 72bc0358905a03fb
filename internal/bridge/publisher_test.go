package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marten/simbridge/internal/adapters/filestore"
	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps the real filestore and counts Save calls.
type countingStore struct {
	*filestore.Store
	saves int
}

func (c *countingStore) Save(path string, doc ports.Document) error {
	c.saves++
	return c.Store.Save(path, doc)
}

func newTestPublisher(t *testing.T, throttle int) (*Publisher, *countingStore, *datadir.Paths) {
	t.Helper()
	paths := datadir.New(filepath.Join(t.TempDir(), "data"))
	store := &countingStore{Store: filestore.New()}
	return NewPublisher(paths, store, throttle), store, paths
}

func TestPublishThrottling(t *testing.T) {
	pub, store, _ := newTestPublisher(t, 5)

	for i := 0; i < 5; i++ {
		_, err := pub.Publish(ports.Document{"mode": "search"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.saves, "exactly one write per throttle interval")

	for i := 0; i < 5; i++ {
		_, err := pub.Publish(ports.Document{"mode": "search"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, store.saves)
}

func TestPublishPreservesFields(t *testing.T) {
	pub, _, paths := newTestPublisher(t, 1)
	pub.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }

	state := ports.Document{
		"mode":      "approach",
		"collected": 4,
		"pose":      []any{0.5, 1.5, 3.14},
	}
	wrote, err := pub.Publish(state)
	require.NoError(t, err)
	require.True(t, wrote)

	out, err := filestore.New().Load(paths.Status)
	require.NoError(t, err)

	mode, _ := out.Mode()
	assert.Equal(t, "approach", mode)
	n, _ := out.Int("collected")
	assert.Equal(t, 4, n)

	ts, ok := out.Timestamp()
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
}

func TestPublishForceBypassesThrottle(t *testing.T) {
	pub, store, _ := newTestPublisher(t, 100)

	require.NoError(t, pub.Force(ports.Document{"mode": "deliver"}))
	assert.Equal(t, 1, store.saves)
}

func TestPublisherConstructionIsPure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	NewPublisher(datadir.New(root), filestore.New(), 5)

	_, err := os.Stat(root)
	assert.True(t, os.IsNotExist(err), "no directories until the first real write")
}

func TestPublishCreatesDirsLazily(t *testing.T) {
	pub, _, paths := newTestPublisher(t, 1)

	_, err := pub.Publish(ports.Document{"mode": "search"})
	require.NoError(t, err)

	info, err := os.Stat(paths.CameraDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
