package app

import (
	"context"
	"time"

	"github.com/marten/simbridge/internal/datadir"
	"github.com/marten/simbridge/internal/domain/monitor"
	"github.com/marten/simbridge/internal/ports"
	"github.com/rs/zerolog"
)

// maxMonitorSamples caps one window regardless of duration/interval math,
// so a tiny interval cannot hold resources unboundedly.
const maxMonitorSamples = 500

// Collector runs the time-windowed behavior monitor: it samples the status
// document at a fixed interval, archives what it sees, and hands the
// sequence to monitor.Derive. This is the one operation in the core that
// deliberately suspends its caller; it runs on the consumer side, never
// inside the producer's tick loop.
type Collector struct {
	paths   *datadir.Paths
	store   ports.DocumentStore
	archive ports.Archive // optional; nil disables archiving
	log     zerolog.Logger

	sleep func(context.Context, time.Duration) bool // test seam
}

// NewCollector creates a collector. archive may be nil.
func NewCollector(paths *datadir.Paths, store ports.DocumentStore, archive ports.Archive, log zerolog.Logger) *Collector {
	return &Collector{
		paths:   paths,
		store:   store,
		archive: archive,
		log:     log,
		sleep:   sleepCtx,
	}
}

// Monitor collects floor(duration/interval) samples, sleeping interval
// between reads, then derives the behavior report. Failed or empty reads
// skip a sample rather than aborting the window. ctx cancels the window
// early; whatever was collected so far is still derived and returned
// along with ctx.Err().
//
// duration is clamped to max; interval below 100ms is raised to 100ms.
func (c *Collector) Monitor(ctx context.Context, duration, interval, max time.Duration) (*monitor.Report, error) {
	if interval < 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}
	if max > 0 && duration > max {
		duration = max
	}

	n := int(duration / interval)
	if n > maxMonitorSamples {
		n = maxMonitorSamples
	}

	var samples []monitor.Sample
	for i := 0; i < n; i++ {
		doc, err := c.store.Load(c.paths.Status)
		switch {
		case err != nil:
			// Torn read or malformed producer output: no sample this round.
			c.log.Debug().Err(err).Msg("monitor sample skipped")
		case doc != nil:
			snap := monitor.Sample{At: time.Now(), Doc: doc}
			samples = append(samples, snap)
			if c.archive != nil {
				if err := c.archive.Append(c.paths.Namespace(), ports.Snapshot{
					CapturedAt: snap.At,
					Doc:        doc,
				}); err != nil {
					c.log.Debug().Err(err).Msg("snapshot archive failed")
				}
			}
		}

		if !c.sleep(ctx, interval) {
			return monitor.Derive(samples), ctx.Err()
		}
	}
	return monitor.Derive(samples), nil
}

// sleepCtx sleeps for d or until ctx is done; reports false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
