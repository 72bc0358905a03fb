package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FrameInfo describes the newest camera frame on disk.
type FrameInfo struct {
	Path string
	Age  time.Duration
}

// LatestFrame finds the most recently written frame in the camera
// directory. The frame ring's modulo naming means filenames wrap, so
// recency is decided by mtime, not by name. Returns (nil, nil) when no
// frames exist yet.
func LatestFrame(cameraDir string) (*FrameInfo, error) {
	entries, err := os.ReadDir(cameraDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var best *FrameInfo
	var bestMod time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if best == nil || info.ModTime().After(bestMod) {
			bestMod = info.ModTime()
			best = &FrameInfo{Path: filepath.Join(cameraDir, e.Name())}
		}
	}
	if best != nil {
		best.Age = time.Since(bestMod)
	}
	return best, nil
}
