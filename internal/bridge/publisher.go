package bridge

import (
	"time"

	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/ports"
)

// DefaultThrottle is the publish throttle interval: the number of Publish
// calls per actual file write. The call site runs once per simulation tick
// (potentially hundreds of Hz); consumers poll far less often, so writing
// every tick would be pure I/O waste.
const DefaultThrottle = 5

// Publisher emits the status document to the shared data directory,
// throttled to every Kth call. It is the sole writer of the status file.
//
// Not safe for concurrent use: the producer's tick loop is single-threaded
// by design, and so is this.
type Publisher struct {
	paths    *datadir.Paths
	store    ports.DocumentStore
	throttle int
	counter  uint64
	ensured  bool

	now func() time.Time // test seam
}

// NewPublisher creates a publisher. Construction performs no filesystem
// writes; directories are created lazily on the first real publish.
// throttle <= 0 selects DefaultThrottle.
func NewPublisher(paths *datadir.Paths, store ports.DocumentStore, throttle int) *Publisher {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &Publisher{
		paths:    paths,
		store:    store,
		throttle: throttle,
		now:      time.Now,
	}
}

// Publish records one tick's state. Every throttle'th call stamps the
// document's timestamp and overwrites the status file wholesale; the rest
// return immediately. The returned bool reports whether a write happened.
//
// A write failure is returned, never thrown across the tick loop: the
// caller logs it and carries on, and the status document simply goes
// stale — which consumers observe through the aging timestamp field.
func (p *Publisher) Publish(state ports.Document) (bool, error) {
	p.counter++
	if p.counter%uint64(p.throttle) != 0 {
		return false, nil
	}
	return true, p.write(state)
}

// Force writes immediately, bypassing the throttle. Used for final state
// on shutdown and for low-rate producers.
func (p *Publisher) Force(state ports.Document) error {
	return p.write(state)
}

func (p *Publisher) write(state ports.Document) error {
	if !p.ensured {
		if err := p.paths.EnsureDirs(); err != nil {
			return err
		}
		p.ensured = true
	}
	state["timestamp"] = p.now().Format(ports.TimestampLayout)
	return p.store.Save(p.paths.Status, state)
}
