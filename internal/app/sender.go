package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/ports"
)

// simulationCommands are the engine-control verbs the producer's built-in
// handler understands.
var simulationCommands = map[string]bool{
	"pause":        true,
	"resume":       true,
	"fast_forward": true,
	"reset":        true,
	"reload":       true,
	"step":         true,
}

// Sender is the consumer side of the command mailbox: a single slot, one
// whole-file overwrite per send, last write wins. Writing a new command
// supersedes any unclaimed prior one — there is no queue.
type Sender struct {
	paths *datadir.Paths
	store ports.DocumentStore

	now   func() time.Time // test seams
	newID func() string
}

// NewSender creates a command sender over the shared data directory.
func NewSender(paths *datadir.Paths, store ports.DocumentStore) *Sender {
	return &Sender{
		paths: paths,
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Send stamps and writes one command document. The timestamp is the dedup
// key on the producer side; the id exists for log correlation only.
// Returns the assigned command id.
func (s *Sender) Send(action string, params ports.Document) (string, error) {
	if action == "" {
		return "", fmt.Errorf("empty action")
	}
	if err := s.paths.EnsureDirs(); err != nil {
		return "", fmt.Errorf("data dir: %w", err)
	}

	id := s.newID()
	cmd := ports.Document{
		"action":    action,
		"id":        id,
		"timestamp": s.now().Format(ports.TimestampLayout),
	}
	for k, v := range params {
		cmd[k] = v
	}
	if err := s.store.Save(s.paths.Commands, cmd); err != nil {
		return "", fmt.Errorf("send %s: %w", action, err)
	}
	return id, nil
}

// SimulationControl sends an engine-control command after validating the
// verb locally, so a typo fails here rather than as a silent producer
// no-op.
func (s *Sender) SimulationControl(command string) (string, error) {
	if !simulationCommands[command] {
		return "", fmt.Errorf("unknown simulation command %q", command)
	}
	return s.Send("simulation", ports.Document{"command": command})
}

// RequestScreenshot asks the producer to export a frame. Returns the
// filename (without extension) the producer will write under
// screenshots/.
func (s *Sender) RequestScreenshot() (string, error) {
	name := "screenshot_" + s.now().Format("20060102_150405")
	if _, err := s.Send("screenshot", ports.Document{"filename": name}); err != nil {
		return "", err
	}
	return name, nil
}

// ResetState asks the controller to reset its task state without
// reloading the world. Only meaningful when the controller registered a
// handler for it.
func (s *Sender) ResetState() (string, error) {
	return s.Send("reset_state", nil)
}
