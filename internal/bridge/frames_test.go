package bridge

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/marten/simbridge/internal/datadir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rgbaFrame builds a solid-color w×h RGBA buffer.
func rgbaFrame(w, h int) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i] = 0x20
		buf[i+1] = 0x80
		buf[i+2] = 0xE0
		buf[i+3] = 0xFF
	}
	return buf
}

func TestFrameRingBoundedByCapacity(t *testing.T) {
	paths := datadir.New(filepath.Join(t.TempDir(), "data"))
	ring := NewFrameRing(paths, 4)

	// Push well past capacity: file count must never exceed it.
	for i := 0; i < 11; i++ {
		_, err := ring.Push(rgbaFrame(8, 8), 8, 8)
		require.NoError(t, err)

		entries, err := os.ReadDir(paths.CameraDir)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(entries), 4)
	}

	entries, err := os.ReadDir(paths.CameraDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Equal(t, uint64(11), ring.Count())
}

func TestFrameRingModuloOverwrite(t *testing.T) {
	paths := datadir.New(filepath.Join(t.TempDir(), "data"))
	ring := NewFrameRing(paths, 3)

	first, err := ring.Push(rgbaFrame(4, 4), 4, 4)
	require.NoError(t, err)

	_, err = ring.Push(rgbaFrame(4, 4), 4, 4)
	require.NoError(t, err)
	_, err = ring.Push(rgbaFrame(4, 4), 4, 4)
	require.NoError(t, err)

	// Fourth frame wraps onto slot 0: same filename, newest wins.
	fourth, err := ring.Push(rgbaFrame(4, 4), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, first, fourth)
}

func TestFrameRingEncodesPNG(t *testing.T) {
	paths := datadir.New(filepath.Join(t.TempDir(), "data"))
	ring := NewFrameRing(paths, 2)

	path, err := ring.Push(rgbaFrame(6, 3), 6, 3)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestFrameRingRawFallback(t *testing.T) {
	paths := datadir.New(filepath.Join(t.TempDir(), "data"))
	ring := NewFrameRing(paths, 2)

	// Buffer size doesn't match the declared geometry: keep raw bytes.
	raw := []byte{1, 2, 3, 4, 5}
	path, err := ring.Push(raw, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, ".bin", filepath.Ext(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestFrameRingMixedFormatsStayBounded(t *testing.T) {
	paths := datadir.New(filepath.Join(t.TempDir(), "data"))
	ring := NewFrameRing(paths, 3)

	// Alternate valid RGBA and size-mismatched buffers past several wraps:
	// a slot's .png and .bin must never coexist, so capacity stays the
	// hard bound on file count.
	for i := 0; i < 13; i++ {
		if i%2 == 0 {
			_, err := ring.Push(rgbaFrame(4, 4), 4, 4)
			require.NoError(t, err)
		} else {
			_, err := ring.Push([]byte{1, 2, 3}, 4, 4)
			require.NoError(t, err)
		}

		entries, err := os.ReadDir(paths.CameraDir)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(entries), 3)
	}

	entries, err := os.ReadDir(paths.CameraDir)
	require.NoError(t, err)
	stems := make(map[string]int)
	for _, e := range entries {
		name := e.Name()
		stems[name[:len(name)-len(filepath.Ext(name))]]++
	}
	for stem, n := range stems {
		assert.Equal(t, 1, n, "slot %s holds one file, not one per format", stem)
	}
}

func TestFrameRingRejectsEmptyBuffer(t *testing.T) {
	ring := NewFrameRing(datadir.New(t.TempDir()), 2)
	_, err := ring.Push(nil, 4, 4)
	assert.Error(t, err)
}
