// Package app wires together the consumer side of the bridge: document
// store, command sender, snapshot archive, watcher and the behavior
// monitor. One App per data directory; the CLI constructs it per
// invocation.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	bboltadapter "github.com/marten/simbridge/internal/adapters/bbolt"
	"github.com/marten/simbridge/internal/adapters/filestore"
	fsw "github.com/marten/simbridge/internal/adapters/fsnotify"
	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/domain/monitor"
	"github.com/marten/simbridge/internal/ports"
	"github.com/rs/zerolog"
)

// App is the consumer-side container over one shared data directory.
type App struct {
	Cfg    Config
	Paths  *datadir.Paths
	Store  ports.DocumentStore
	Sender *Sender
	Log    zerolog.Logger

	archive *bboltadapter.Archive // opened lazily; nil until first use
}

// New creates an App. No files are opened until an operation needs them.
func New(cfg Config) *App {
	paths := datadir.New(cfg.DataDir)
	store := filestore.New()
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	return &App{
		Cfg:    cfg,
		Paths:  paths,
		Store:  store,
		Sender: NewSender(paths, store),
		Log:    log,
	}
}

// Close releases the archive if it was opened.
func (a *App) Close() error {
	if a.archive == nil {
		return nil
	}
	err := a.archive.Close()
	a.archive = nil
	return err
}

// openArchive opens the snapshot archive on first use. The archive is
// consumer-owned derived data; failing to open it degrades features, it
// never blocks reading live state.
func (a *App) openArchive() (*bboltadapter.Archive, error) {
	if a.archive != nil {
		return a.archive, nil
	}
	if err := a.Paths.EnsureDirs(); err != nil {
		return nil, err
	}
	arch, err := bboltadapter.NewArchive(a.Paths.ArchiveDB)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	a.archive = arch
	return arch, nil
}

// Status loads the current status document and archives the observation.
// Returns (nil, nil) when the producer has not published yet.
func (a *App) Status() (ports.Document, error) {
	doc, err := a.Store.Load(a.Paths.Status)
	if err != nil {
		a.Log.Debug().Err(err).Msg("status read failed")
		return nil, nil
	}
	if doc == nil {
		return nil, nil
	}

	if arch, err := a.openArchive(); err == nil {
		if err := arch.Append(a.Paths.Namespace(), ports.Snapshot{
			CapturedAt: time.Now(),
			Doc:        doc,
		}); err != nil {
			a.Log.Debug().Err(err).Msg("snapshot archive failed")
		}
	}
	return doc, nil
}

// WorldInfo loads the world description document, if the supervisor
// controller published one.
func (a *App) WorldInfo() (ports.Document, error) {
	doc, err := a.Store.Load(a.Paths.WorldInfo)
	if err != nil {
		a.Log.Debug().Err(err).Msg("world info read failed")
		return nil, nil
	}
	return doc, nil
}

// Monitor runs one behavior-monitoring window with the configured bounds.
func (a *App) Monitor(ctx context.Context, duration time.Duration) (*monitor.Report, error) {
	arch, err := a.openArchive()
	if err != nil {
		a.Log.Warn().Err(err).Msg("monitoring without archive")
		arch = nil
	}
	var archive ports.Archive
	if arch != nil {
		archive = arch
	}

	c := NewCollector(a.Paths, a.Store, archive, a.Log)
	return c.Monitor(ctx, duration, a.Cfg.MonitorInterval(), a.Cfg.MonitorMax())
}

// History returns the last n archived snapshots, newest first.
func (a *App) History(n int) ([]ports.Snapshot, error) {
	arch, err := a.openArchive()
	if err != nil {
		return nil, err
	}
	return arch.Recent(a.Paths.Namespace(), n)
}

// TailLog returns the last n controller log lines, clamped to the
// configured maximum.
func (a *App) TailLog(n int, filter string) ([]string, error) {
	if n <= 0 {
		n = 50
	}
	if n > a.Cfg.LogTailMax {
		n = a.Cfg.LogTailMax
	}
	return TailLog(a.Paths.ControllerLog, n, filter)
}

// LatestFrame locates the newest camera frame.
func (a *App) LatestFrame() (*FrameInfo, error) {
	return LatestFrame(a.Paths.CameraDir)
}

// Watch invokes onStatus with each freshly published status document until
// ctx is done. Parse failures during a watch are the usual torn-read noise
// and are skipped.
func (a *App) Watch(ctx context.Context, onStatus func(ports.Document)) error {
	if err := a.Paths.EnsureDirs(); err != nil {
		return err
	}
	w, err := fsw.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	err = w.Watch(a.Paths.Root, func(path string) {
		if path != a.Paths.Status {
			return
		}
		doc, err := a.Store.Load(path)
		if err != nil || doc == nil {
			return
		}
		onStatus(doc)
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}
