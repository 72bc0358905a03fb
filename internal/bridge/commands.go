package bridge

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/ports"
	"github.com/rs/zerolog"
)

// Command actions understood by the built-in handlers.
const (
	ActionSimulation = "simulation"
	ActionScreenshot = "screenshot"
	ActionNone       = "none"
)

// ClearedCommand is the sentinel written into the mailbox the moment a
// command is claimed, before its handler runs.
func ClearedCommand() ports.Document {
	return ports.Document{
		"action":    ActionNone,
		"command":   "cleared",
		"timestamp": "0",
	}
}

// Handler processes one claimed command document. Handlers run on the
// producer's tick goroutine and must not block beyond bounded I/O.
type Handler func(cmd ports.Document)

// Receiver is the producer side of the command mailbox: a single-slot,
// file-backed channel with timestamp dedup and a clear-before-execute
// claim protocol.
//
// Dedup state lives only in this instance's memory. The durable half of
// dedup is the file-level clear: a handler like world reload kills this
// very process, and the restarted receiver — with empty dedup state —
// must find the sentinel rather than the original command, or it would
// re-dispatch the reload forever.
type Receiver struct {
	paths    *datadir.Paths
	store    ports.DocumentStore
	sup      Supervisor
	log      zerolog.Logger
	handlers map[string]Handler

	lastClaimed string
}

// NewReceiver creates a command receiver with the built-in simulation and
// screenshot handlers registered. sup may be nil, in which case privileged
// commands log a warning and perform no environment mutation.
func NewReceiver(paths *datadir.Paths, store ports.DocumentStore, sup Supervisor, log zerolog.Logger) *Receiver {
	r := &Receiver{
		paths:    paths,
		store:    store,
		sup:      sup,
		log:      log,
		handlers: make(map[string]Handler),
	}
	r.Register(ActionSimulation, r.handleSimulation)
	r.Register(ActionScreenshot, r.handleScreenshot)
	return r
}

// Register associates an action name with a handler. At most one handler
// per action; later registration overwrites earlier, including the
// built-ins.
func (r *Receiver) Register(action string, h Handler) {
	r.handlers[action] = h
}

// Receive polls the mailbox once. It returns (nil, nil) when there is no
// new command: file absent, content unparsable, required fields missing,
// the cleared sentinel, or timestamp already claimed. A genuinely new
// command is claimed (its timestamp recorded, the file overwritten with
// the cleared sentinel), dispatched to its handler — unknown actions are
// silently ignored — and returned for optional further inspection by the
// caller.
func (r *Receiver) Receive() (ports.Document, error) {
	cmd, err := r.store.Load(r.paths.Commands)
	if err != nil {
		// Torn read or malformed sender output: no data this tick.
		return nil, err
	}
	if cmd == nil {
		return nil, nil
	}
	if action, _ := cmd.String("action"); action == ActionNone {
		// The cleared sentinel is mailbox bookkeeping, not a command. A
		// freshly restarted receiver must not claim it either.
		return nil, nil
	}

	ts, ok := cmd.String("timestamp")
	if !ok {
		return nil, fmt.Errorf("command missing timestamp: %s", filepath.Base(r.paths.Commands))
	}
	if ts == r.lastClaimed {
		return nil, nil
	}
	r.lastClaimed = ts

	// Clear the mailbox before any handler runs. Ordering is the whole
	// invariant: the handler may never return (world reload restarts the
	// process), and the sentinel on disk is what stops the restarted
	// process from claiming the same command again.
	if err := r.store.Save(r.paths.Commands, ClearedCommand()); err != nil {
		r.log.Warn().Err(err).Msg("failed to clear command mailbox")
	}

	action, _ := cmd.String("action")
	if h, ok := r.handlers[action]; ok {
		h(cmd)
	}
	return cmd, nil
}

func (r *Receiver) handleSimulation(cmd ports.Document) {
	if r.sup == nil {
		r.log.Warn().Msg("simulation command ignored: no supervisor capability")
		return
	}

	sub, _ := cmd.String("command")
	var err error
	switch sub {
	case "pause":
		err = r.sup.SetMode(ModePause)
	case "resume":
		err = r.sup.SetMode(ModeRealTime)
	case "fast_forward":
		err = r.sup.SetMode(ModeFastForward)
	case "reset":
		err = r.sup.Reset()
	case "reload":
		err = r.sup.ReloadWorld()
	case "step":
		err = r.sup.Step(int(r.sup.BasicTimeStep()))
	default:
		r.log.Debug().Str("command", sub).Msg("unknown simulation command")
		return
	}

	if err != nil {
		r.log.Warn().Err(err).Str("command", sub).Msg("simulation control failed")
		return
	}
	r.log.Info().Str("command", sub).Msg("simulation control")
}

func (r *Receiver) handleScreenshot(cmd ports.Document) {
	if r.sup == nil {
		r.log.Warn().Msg("screenshot command ignored: no supervisor capability")
		return
	}

	name, ok := cmd.String("filename")
	if !ok || name == "" {
		name = "screenshot_" + time.Now().Format("150405")
	}
	path := filepath.Join(r.paths.ScreenshotsDir, name+".png")

	if err := r.paths.EnsureDirs(); err != nil {
		r.log.Warn().Err(err).Msg("screenshot dir unavailable")
		return
	}
	if err := r.sup.ExportImage(path, 100); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("screenshot failed")
		return
	}
	r.log.Info().Str("file", filepath.Base(path)).Msg("screenshot")
}
