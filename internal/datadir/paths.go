// Package datadir resolves the layout of the shared data directory — the
// single rendezvous point between the simulation controller (producer) and
// the tool server (consumer). Both sides construct the same Paths from the
// same root; neither assumes the other has created anything yet.
package datadir

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths under the data directory,
// computed once at construction.
type Paths struct {
	Root string // data/

	Status    string // data/status.json
	Commands  string // data/commands.json
	WorldInfo string // data/world_info.json
	MapText   string // data/map.txt

	CameraDir      string // data/camera/
	ScreenshotsDir string // data/screenshots/

	LogDir        string // data/logs/
	ControllerLog string // data/logs/controller.log

	ArchiveDB string // data/archive.db (consumer-owned bbolt)
}

// New constructs all resolved paths from a data directory root. The root
// is resolved to an absolute path so that every derived path compares
// equal to the absolute paths filesystem watchers report, regardless of
// the working directory the process started in. No directories are
// created; see EnsureDirs.
func New(root string) *Paths {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Paths{
		Root: root,

		Status:    filepath.Join(root, "status.json"),
		Commands:  filepath.Join(root, "commands.json"),
		WorldInfo: filepath.Join(root, "world_info.json"),
		MapText:   filepath.Join(root, "map.txt"),

		CameraDir:      filepath.Join(root, "camera"),
		ScreenshotsDir: filepath.Join(root, "screenshots"),

		LogDir:        filepath.Join(root, "logs"),
		ControllerLog: filepath.Join(root, "logs", "controller.log"),

		ArchiveDB: filepath.Join(root, "archive.db"),
	}
}

// EnsureDirs creates the root and all subdirectories. Idempotent.
// Called lazily on first real write so that constructing either side of
// the bridge has no filesystem side effects.
func (p *Paths) EnsureDirs() error {
	dirs := []string{
		p.Root,
		p.CameraDir,
		p.ScreenshotsDir,
		p.LogDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Namespace returns the archive namespace for this data directory: the
// absolute root path, which is stable across both processes.
func (p *Paths) Namespace() string {
	return p.Root
}
