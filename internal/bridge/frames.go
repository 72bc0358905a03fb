package bridge

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/marten/simbridge/internal/datadir"
)

// DefaultFrameCapacity bounds how many camera frames exist on disk.
const DefaultFrameCapacity = 50

// FrameRing writes camera frames under the data directory's camera/
// subdirectory with a bounded footprint.
//
// Eviction policy: modulo naming. Frame N is written as
// frame_<N mod capacity>.png, so frame N+capacity silently overwrites
// frame N in place. No directory sweep is ever needed and disk usage is
// bounded by construction; the cost is that surviving filenames are not
// chronologically ordered after wraparound, so readers locate the newest
// frame by mtime, not by name.
type FrameRing struct {
	paths    *datadir.Paths
	capacity int
	counter  uint64
	ensured  bool
}

// NewFrameRing creates a frame ring. capacity <= 0 selects
// DefaultFrameCapacity. No directories are created until the first push.
func NewFrameRing(paths *datadir.Paths, capacity int) *FrameRing {
	if capacity <= 0 {
		capacity = DefaultFrameCapacity
	}
	return &FrameRing{paths: paths, capacity: capacity}
}

// Push stores one captured frame and returns the path written. pixels is
// tightly packed RGBA; when the buffer matches w*h*4, the frame is
// re-encoded as PNG. A buffer of any other size is preserved verbatim
// under a .bin name rather than dropped — a raw dump beats no frame when
// debugging a camera.
func (f *FrameRing) Push(pixels []byte, w, h int) (string, error) {
	if len(pixels) == 0 {
		return "", fmt.Errorf("empty frame buffer")
	}
	if !f.ensured {
		if err := f.paths.EnsureDirs(); err != nil {
			return "", err
		}
		f.ensured = true
	}

	slot := f.counter % uint64(f.capacity)
	f.counter++

	stem := filepath.Join(f.paths.CameraDir, fmt.Sprintf("frame_%04d", slot))
	pngPath, binPath := stem+".png", stem+".bin"

	if len(pixels) != w*h*4 {
		// The slot owns one file regardless of format; evict any PNG a
		// prior wrap left behind so capacity stays the hard bound.
		os.Remove(pngPath)
		if err := os.WriteFile(binPath, pixels, 0644); err != nil {
			return "", fmt.Errorf("write raw frame: %w", err)
		}
		return binPath, nil
	}
	os.Remove(binPath)

	img := &image.NRGBA{
		Pix:    pixels,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}

	out, err := os.Create(pngPath)
	if err != nil {
		return "", fmt.Errorf("create frame file: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return "", fmt.Errorf("encode frame: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close frame file: %w", err)
	}
	return pngPath, nil
}

// Count returns how many frames have been pushed over the ring's lifetime.
func (f *FrameRing) Count() uint64 {
	return f.counter
}
