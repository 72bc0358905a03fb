// Package monitor derives behavior summaries from a sequence of status
// snapshots. The sampling loop lives on the consumer side (internal/app);
// everything here is pure post-processing, so it tests without a clock.
package monitor

import (
	"fmt"
	"math"
	"time"

	"github.com/marten/simbridge/internal/ports"
)

// Sample is one captured status document plus the consumer-local time it
// was read. Immutable once collected.
type Sample struct {
	At  time.Time
	Doc ports.Document
}

// Transition is one observed mode change ("search→approach").
type Transition string

// Report summarizes robot behavior over one monitoring window.
type Report struct {
	// NoData is set when the producer never wrote a status document
	// during the window. All other fields are meaningless then.
	NoData bool

	Samples     int
	Transitions []Transition
	FirstMode   string

	// Movement summary, present when at least one sample carried a pose.
	HasPath  bool
	Start    [2]float64
	End      [2]float64
	Distance float64

	// Task progress, present when a "collected" counter appeared.
	HasProgress    bool
	CollectedFirst int
	CollectedLast  int
	Delivered      map[string]int // final per-category counts, may be nil
}

// Derive computes the behavior report for a collected sample sequence.
func Derive(samples []Sample) *Report {
	if len(samples) == 0 {
		return &Report{NoData: true}
	}

	r := &Report{Samples: len(samples)}
	r.deriveModes(samples)
	r.derivePath(samples)
	r.deriveProgress(samples)
	return r
}

func (r *Report) deriveModes(samples []Sample) {
	modes := make([]string, len(samples))
	for i, s := range samples {
		// Canonical shape is the flat "mode" field; the nested per-robot
		// map is a compatibility shim from the multi-robot era.
		m, ok := s.Doc.Mode()
		if !ok {
			m, ok = s.Doc.Robot("main").Mode()
		}
		if !ok {
			m = "unknown"
		}
		modes[i] = m
	}

	r.FirstMode = modes[0]
	for i := 1; i < len(modes); i++ {
		if modes[i] != modes[i-1] {
			r.Transitions = append(r.Transitions, Transition(fmt.Sprintf("%s→%s", modes[i-1], modes[i])))
		}
	}
}

func (r *Report) derivePath(samples []Sample) {
	var positions [][2]float64
	for _, s := range samples {
		pose, ok := s.Doc.Pose()
		if !ok {
			pose, ok = s.Doc.Robot("main").Pose()
		}
		if ok {
			positions = append(positions, [2]float64{pose[0], pose[1]})
		}
	}
	if len(positions) == 0 {
		return
	}

	r.HasPath = true
	r.Start = positions[0]
	r.End = positions[len(positions)-1]
	for i := 1; i < len(positions); i++ {
		dx := positions[i][0] - positions[i-1][0]
		dy := positions[i][1] - positions[i-1][1]
		r.Distance += math.Sqrt(dx*dx + dy*dy)
	}
}

func (r *Report) deriveProgress(samples []Sample) {
	first, firstOK := samples[0].Doc.Int("collected")
	last, lastOK := samples[len(samples)-1].Doc.Int("collected")
	if !firstOK && !lastOK {
		return
	}

	r.HasProgress = true
	r.CollectedFirst = first
	r.CollectedLast = last

	if delivered, ok := samples[len(samples)-1].Doc.Map("delivered"); ok {
		r.Delivered = make(map[string]int, len(delivered))
		for k := range delivered {
			if n, ok := delivered.Int(k); ok {
				r.Delivered[k] = n
			}
		}
	}
}
