package app

import (
	"strings"
	"testing"
	"time"

	"github.com/marten/simbridge/internal/domain/monitor"
	"github.com/marten/simbridge/internal/ports"
	"github.com/stretchr/testify/assert"
)

func TestFormatRobotStateFlat(t *testing.T) {
	out := FormatRobotState(ports.Document{
		"timestamp": "2026-06-01T08:30:00Z",
		"pose":      []any{1.0, 2.0, 0.0},
		"mode":      "search",
		"collected": float64(3),
	})

	assert.Contains(t, out, "# Robot State")
	assert.Contains(t, out, "*Updated: 2026-06-01T08:30:00Z*")
	assert.Contains(t, out, "## main", "flat document renders as the main robot")
	assert.Contains(t, out, "**Position**: (1.00, 2.00)")
	assert.Contains(t, out, "**Mode**: `search`")
	assert.Contains(t, out, "**collected**: 3")
}

func TestFormatRobotStateNested(t *testing.T) {
	out := FormatRobotState(ports.Document{
		"robots": map[string]any{
			"youbot": map[string]any{"mode": "deliver"},
			"scout":  map[string]any{"mode": "search"},
		},
	})

	assert.Contains(t, out, "## scout")
	assert.Contains(t, out, "## youbot")
	assert.Less(t, strings.Index(out, "## scout"), strings.Index(out, "## youbot"),
		"robots render in stable order")
}

func TestFormatSensorsEmpty(t *testing.T) {
	out := FormatSensors(ports.Document{"mode": "search"})
	assert.Contains(t, out, "No sensor data available")
}

func TestFormatSensors(t *testing.T) {
	out := FormatSensors(ports.Document{
		"sensors": map[string]any{
			"lidar": map[string]any{
				"front": map[string]any{"min": 0.42},
			},
			"distance": map[string]any{
				"ds_left": float64(240),
			},
			"camera": map[string]any{
				"recognized_objects": []any{
					map[string]any{"color": "red", "distance": 1.5},
				},
			},
			"gps": map[string]any{"x": 1.0},
		},
	})

	assert.Contains(t, out, "## Lidar")
	assert.Contains(t, out, "**front**: min=0.42m")
	assert.Contains(t, out, "**ds_left**: 240")
	assert.Contains(t, out, "Detected 1 objects")
	assert.Contains(t, out, "- red: 1.50m")
	assert.Contains(t, out, "## gps", "unrecognized sensor types still render")
}

func TestFormatReportNoData(t *testing.T) {
	out := FormatReport(&monitor.Report{NoData: true}, 20*time.Second)
	assert.Contains(t, out, "No data collected")
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(&monitor.Report{
		Samples:        10,
		Transitions:    []monitor.Transition{"search→approach"},
		FirstMode:      "search",
		HasPath:        true,
		Start:          [2]float64{0, 0},
		End:            [2]float64{3, 4},
		Distance:       5,
		HasProgress:    true,
		CollectedFirst: 1,
		CollectedLast:  4,
		Delivered:      map[string]int{"red": 2},
	}, 20*time.Second)

	assert.Contains(t, out, "(10 samples)")
	assert.Contains(t, out, "- search→approach")
	assert.Contains(t, out, "**Distance**: 5.00m")
	assert.Contains(t, out, "**Collected**: 1 → 4")
	assert.Contains(t, out, "**red**: 2")
}

func TestFormatReportStableMode(t *testing.T) {
	out := FormatReport(&monitor.Report{Samples: 3, FirstMode: "search"}, time.Minute)
	assert.Contains(t, out, "Stayed in `search` mode")
}

func TestFormatFullStateTruncates(t *testing.T) {
	doc := ports.Document{"blob": strings.Repeat("x", 2000)}

	out := FormatFullState(doc, 100)
	assert.Contains(t, out, "[truncated]")
	assert.LessOrEqual(t, len(out), 120)

	full := FormatFullState(doc, 0)
	assert.NotContains(t, full, "[truncated]", "zero limit disables truncation")
}
