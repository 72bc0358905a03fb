package monitor

import (
	"testing"
	"time"

	"github.com/marten/simbridge/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeq(docs ...ports.Document) []Sample {
	base := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	out := make([]Sample, len(docs))
	for i, d := range docs {
		out[i] = Sample{At: base.Add(time.Duration(i) * 2 * time.Second), Doc: d}
	}
	return out
}

func TestDeriveNoSamples(t *testing.T) {
	r := Derive(nil)
	assert.True(t, r.NoData, "empty window reports no data, not zeros")
}

func TestDeriveModeTransitions(t *testing.T) {
	r := Derive(sampleSeq(
		ports.Document{"mode": "search"},
		ports.Document{"mode": "search"},
		ports.Document{"mode": "approach"},
		ports.Document{"mode": "approach"},
		ports.Document{"mode": "deliver"},
	))

	assert.Equal(t,
		[]Transition{"search→approach", "approach→deliver"},
		r.Transitions)
	assert.Equal(t, "search", r.FirstMode)
	assert.Equal(t, 5, r.Samples)
}

func TestDeriveStableMode(t *testing.T) {
	r := Derive(sampleSeq(
		ports.Document{"mode": "search"},
		ports.Document{"mode": "search"},
	))
	assert.Empty(t, r.Transitions)
	assert.Equal(t, "search", r.FirstMode)
}

func TestDeriveNestedRobotFallback(t *testing.T) {
	nested := func(mode string) ports.Document {
		return ports.Document{
			"robots": map[string]any{"main": map[string]any{"mode": mode}},
		}
	}
	r := Derive(sampleSeq(nested("search"), nested("deliver")))
	assert.Equal(t, []Transition{"search→deliver"}, r.Transitions)
}

func TestDerivePath(t *testing.T) {
	r := Derive(sampleSeq(
		ports.Document{"pose": []any{0.0, 0.0, 0.0}},
		ports.Document{"pose": []any{3.0, 4.0, 0.0}},
		ports.Document{"pose": []any{3.0, 4.0, 1.0}},
	))

	require.True(t, r.HasPath)
	assert.Equal(t, [2]float64{0, 0}, r.Start)
	assert.Equal(t, [2]float64{3, 4}, r.End)
	assert.InDelta(t, 5.0, r.Distance, 1e-9, "heading change adds no distance")
}

func TestDerivePathSkipsPoselessSamples(t *testing.T) {
	r := Derive(sampleSeq(
		ports.Document{"pose": []any{0.0, 0.0}},
		ports.Document{"mode": "search"}, // no pose this sample
		ports.Document{"pose": []any{0.0, 2.0}},
	))

	require.True(t, r.HasPath)
	assert.InDelta(t, 2.0, r.Distance, 1e-9)
}

func TestDeriveProgress(t *testing.T) {
	r := Derive(sampleSeq(
		ports.Document{"collected": float64(1)},
		ports.Document{
			"collected": float64(4),
			"delivered": map[string]any{"red": float64(2), "green": float64(1)},
		},
	))

	require.True(t, r.HasProgress)
	assert.Equal(t, 1, r.CollectedFirst)
	assert.Equal(t, 4, r.CollectedLast)
	assert.Equal(t, map[string]int{"red": 2, "green": 1}, r.Delivered)
}

func TestDeriveNoProgressFields(t *testing.T) {
	r := Derive(sampleSeq(ports.Document{"mode": "search"}))
	assert.False(t, r.HasProgress)
	assert.False(t, r.HasPath)
}
