// Package bridge is the producer side of the file channel: everything the
// simulation controller embeds to expose its state and accept commands.
// One Bridge per controller process. All methods are called from the
// controller's single-threaded tick loop; none of them blocks beyond one
// bounded file operation, and none of them panics — a broken disk shows
// up to consumers as a stale status document, nothing more.
package bridge

import (
	"io"
	"os"

	"github.com/marten/simbridge/internal/adapters/filestore"
	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/ports"
	"github.com/rs/zerolog"
)

// Config holds construction parameters for a Bridge.
type Config struct {
	// DataDir is the shared data directory root. Required.
	DataDir string

	// Supervisor grants elevated capability for environment control and
	// frame capture. nil means privileged commands are logged and skipped.
	Supervisor Supervisor

	// Throttle is the publish throttle interval (calls per write).
	// 0 selects DefaultThrottle.
	Throttle int

	// FrameCapacity bounds on-disk camera frames. 0 selects
	// DefaultFrameCapacity.
	FrameCapacity int

	// LogSink overrides the controller.log destination. Tests use this;
	// production leaves it nil.
	LogSink io.Writer
}

// Bridge bundles the producer-side components over one data directory.
type Bridge struct {
	Paths    *datadir.Paths
	Pub      *Publisher
	Recv     *Receiver
	Frames   *FrameRing
	Detector *ReloadDetector

	log zerolog.Logger
}

// New wires up a producer bridge. Construction has no filesystem side
// effects; directories appear lazily on the first real write.
func New(cfg Config) *Bridge {
	paths := datadir.New(cfg.DataDir)
	store := filestore.New()
	log := newLogger(paths, cfg.LogSink)

	b := &Bridge{
		Paths:  paths,
		Pub:    NewPublisher(paths, store, cfg.Throttle),
		Recv:   NewReceiver(paths, store, cfg.Supervisor, log),
		Frames: NewFrameRing(paths, cfg.FrameCapacity),
		log:    log,
	}
	b.Detector = NewReloadDetector(nil)
	return b
}

// Log returns the bridge logger (sink: <data>/logs/controller.log).
func (b *Bridge) Log() zerolog.Logger {
	return b.log
}

// Publish records one tick's state, throttled. Errors are logged and
// discarded here so the tick loop's call site stays a one-liner.
func (b *Bridge) Publish(state ports.Document) {
	if _, err := b.Pub.Publish(state); err != nil {
		b.log.Debug().Err(err).Msg("publish failed")
	}
}

// PollCommand checks the mailbox once and dispatches any new command.
// Load errors (torn reads, malformed senders) are logged and treated as
// "no command this tick".
func (b *Bridge) PollCommand() ports.Document {
	cmd, err := b.Recv.Receive()
	if err != nil {
		b.log.Debug().Err(err).Msg("command poll failed")
		return nil
	}
	return cmd
}

// Register adds or replaces a command handler.
func (b *Bridge) Register(action string, h Handler) {
	b.Recv.Register(action, h)
}

// SaveFrame pushes a camera frame into the rolling buffer. Errors are
// logged and discarded; frames are best-effort diagnostics.
func (b *Bridge) SaveFrame(pixels []byte, w, h int) {
	if _, err := b.Frames.Push(pixels, w, h); err != nil {
		b.log.Debug().Err(err).Msg("frame save failed")
	}
}

// MirrorMap writes the rendered occupancy grid alongside the status
// document for fixed-width display tools.
func (b *Bridge) MirrorMap(text string) error {
	if err := b.Paths.EnsureDirs(); err != nil {
		return err
	}
	return os.WriteFile(b.Paths.MapText, []byte(text), 0644)
}
