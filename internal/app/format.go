package app

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/marten/simbridge/internal/domain/monitor"
	"github.com/marten/simbridge/internal/ports"
)

// Fields rendered by name rather than through the generic fallback loop.
var wellKnownFields = map[string]bool{
	"pose":      true,
	"position":  true,
	"mode":      true,
	"state":     true,
	"timestamp": true,
	"sensors":   true,
	"robots":    true,
}

// FormatRobotState renders the status document as markdown: pose, mode and
// custom fields per robot. Handles both the flat single-robot shape and
// the nested robots map.
func FormatRobotState(doc ports.Document) string {
	var b strings.Builder
	b.WriteString("# Robot State\n\n")

	if ts, ok := doc.String("timestamp"); ok {
		fmt.Fprintf(&b, "*Updated: %s*\n\n", ts)
	}

	robots, ok := doc.Map("robots")
	if !ok {
		robots = ports.Document{"main": map[string]any(doc)}
	}

	for _, name := range sortedKeys(robots) {
		state, ok := robots.Map(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "## %s\n", name)

		if pose, ok := state.Pose(); ok {
			if len(pose) >= 3 {
				fmt.Fprintf(&b, "**Position**: (%.2f, %.2f) θ=%.1f°\n",
					pose[0], pose[1], pose[2]*180/math.Pi)
			} else {
				fmt.Fprintf(&b, "**Position**: (%.2f, %.2f)\n", pose[0], pose[1])
			}
		}
		if mode, ok := state.Mode(); ok {
			fmt.Fprintf(&b, "**Mode**: `%s`\n", mode)
		}

		for _, key := range sortedKeys(state) {
			if wellKnownFields[key] {
				continue
			}
			switch v := state[key].(type) {
			case map[string]any:
				enc, _ := json.Marshal(v)
				fmt.Fprintf(&b, "**%s**: %s\n", key, enc)
			case []any:
				fmt.Fprintf(&b, "**%s**: %d items\n", key, len(v))
			default:
				fmt.Fprintf(&b, "**%s**: %v\n", key, v)
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatSensors renders the sensors sub-document: lidar minima, distance
// sensors, camera recognition, then anything unrecognized verbatim.
func FormatSensors(doc ports.Document) string {
	sensors, ok := doc.Map("sensors")
	if !ok || len(sensors) == 0 {
		return "No sensor data available. Ensure the controller is publishing sensor data.\n"
	}

	var b strings.Builder
	b.WriteString("# Sensor Readings\n\n")

	if lidar, ok := sensors.Map("lidar"); ok && len(lidar) > 0 {
		b.WriteString("## Lidar\n")
		for _, name := range sortedKeys(lidar) {
			if entry, ok := lidar.Map(name); ok {
				if min, ok := entry.Float("min"); ok {
					fmt.Fprintf(&b, "- **%s**: min=%.2fm\n", name, min)
					continue
				}
			}
			if v, ok := lidar.Float(name); ok {
				fmt.Fprintf(&b, "- **%s**: %.2fm\n", name, v)
			}
		}
		b.WriteString("\n")
	}

	if distance, ok := sensors.Map("distance"); ok && len(distance) > 0 {
		b.WriteString("## Distance Sensors\n")
		for _, name := range sortedKeys(distance) {
			if v, ok := distance.Float(name); ok {
				fmt.Fprintf(&b, "- **%s**: %.0f\n", name, v)
			}
		}
		b.WriteString("\n")
	}

	if camera, ok := sensors.Map("camera"); ok {
		if objs, ok := camera["recognized_objects"].([]any); ok && len(objs) > 0 {
			b.WriteString("## Camera\n")
			fmt.Fprintf(&b, "Detected %d objects:\n", len(objs))
			for i, raw := range objs {
				if i >= 10 {
					break
				}
				obj, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				o := ports.Document(obj)
				color, _ := o.String("color")
				if color == "" {
					color = "unknown"
				}
				dist, _ := o.Float("distance")
				fmt.Fprintf(&b, "- %s: %.2fm\n", color, dist)
			}
			b.WriteString("\n")
		}
	}

	for _, name := range sortedKeys(sensors) {
		if name == "lidar" || name == "distance" || name == "camera" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n", name)
		if sub, ok := sensors.Map(name); ok {
			for _, k := range sortedKeys(sub) {
				fmt.Fprintf(&b, "- **%s**: %v\n", k, sub[k])
			}
		} else {
			fmt.Fprintf(&b, "- %v\n", sensors[name])
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatReport renders a behavior-monitor report as markdown.
func FormatReport(r *monitor.Report, window time.Duration) string {
	if r == nil || r.NoData {
		return "No data collected. Is the simulation running?\n"
	}

	var b strings.Builder
	b.WriteString("# Simulation Monitor Report\n\n")
	fmt.Fprintf(&b, "**Window**: %s (%d samples)\n\n", window, r.Samples)

	b.WriteString("## Mode Transitions\n")
	if len(r.Transitions) == 0 {
		fmt.Fprintf(&b, "- Stayed in `%s` mode\n", r.FirstMode)
	} else {
		for _, tr := range r.Transitions {
			fmt.Fprintf(&b, "- %s\n", tr)
		}
	}
	b.WriteString("\n")

	if r.HasPath {
		b.WriteString("## Movement\n")
		fmt.Fprintf(&b, "- **Start**: (%.2f, %.2f)\n", r.Start[0], r.Start[1])
		fmt.Fprintf(&b, "- **End**: (%.2f, %.2f)\n", r.End[0], r.End[1])
		fmt.Fprintf(&b, "- **Distance**: %.2fm\n\n", r.Distance)
	}

	if r.HasProgress {
		b.WriteString("## Progress\n")
		fmt.Fprintf(&b, "- **Collected**: %d → %d\n", r.CollectedFirst, r.CollectedLast)
		keys := make([]string, 0, len(r.Delivered))
		for k := range r.Delivered {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s**: %d\n", k, r.Delivered[k])
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatFullState renders the whole document as indented JSON, truncated
// at limit characters.
func FormatFullState(doc ports.Document, limit int) string {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "Error: state not serializable.\n"
	}
	s := string(data)
	if limit > 0 && len(s) > limit {
		return s[:limit] + "\n... [truncated]"
	}
	return s
}

// sortedKeys returns a document's keys in stable order for deterministic
// output.
func sortedKeys(d ports.Document) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
