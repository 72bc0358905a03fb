// Package sensor converts raw device readings into the summarized,
// classified structures the status document carries. Everything here is a
// pure function over caller-supplied values: the device API that produced
// them is an external collaborator, and a failed read on one device is the
// caller's to record as missing — it never poisons the others.
package sensor

import "math"

// DefaultProximityThreshold is the range below which a return counts as a
// nearby obstacle, in distance units.
const DefaultProximityThreshold = 1.0

// RangeReading is one range-returning device's raw scan.
type RangeReading struct {
	Name     string
	Values   []float64
	MaxRange float64 // returns at or beyond this are "no echo"
}

// DeviceMin is the per-device minimum valid range. Valid is false when the
// device produced no return below its max range.
type DeviceMin struct {
	Min   float64
	Valid bool
}

// RangeSummary condenses all range devices into per-device minima plus a
// global count of returns inside the proximity threshold.
type RangeSummary struct {
	Devices   map[string]DeviceMin
	Obstacles int
}

// SummarizeRanges computes per-device minimum valid ranges and counts
// returns closer than threshold. threshold <= 0 selects
// DefaultProximityThreshold. Infinite and NaN returns are discarded along
// with at-max-range returns.
func SummarizeRanges(readings []RangeReading, threshold float64) RangeSummary {
	if threshold <= 0 {
		threshold = DefaultProximityThreshold
	}

	out := RangeSummary{Devices: make(map[string]DeviceMin, len(readings))}
	for _, r := range readings {
		dm := DeviceMin{Min: math.Inf(1)}
		for _, v := range r.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) || v >= r.MaxRange {
				continue
			}
			if v < dm.Min {
				dm.Min = v
				dm.Valid = true
			}
			if v < threshold {
				out.Obstacles++
			}
		}
		if !dm.Valid {
			dm.Min = 0
		}
		out.Devices[r.Name] = dm
	}
	return out
}

// Proximity snapshots per-device scalar readings. The returned map never
// aliases a live device buffer.
func Proximity(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for name, v := range values {
		out[name] = v
	}
	return out
}

// RecognizedObject is a camera-recognition hit: RGB color channels in
// [0,1] and a position vector relative to the camera.
type RecognizedObject struct {
	Colors   [3]float64
	Position [3]float64
}

// ObjectReport is the classified form carried in the status document.
type ObjectReport struct {
	Color    string  `json:"color"`
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"` // azimuth, degrees
}

// Color classes produced by Classify.
const (
	ColorRed     = "red"
	ColorGreen   = "green"
	ColorBlue    = "blue"
	ColorUnknown = "unknown"
)

// Classify names a color by dominant-channel thresholding.
func Classify(r, g, b float64) string {
	switch {
	case r > 0.5 && g < 0.5:
		return ColorRed
	case g > 0.5 && r < 0.5:
		return ColorGreen
	case b > 0.5:
		return ColorBlue
	default:
		return ColorUnknown
	}
}

// ClassifyObjects converts recognition hits into classified reports:
// dominant-channel color, Euclidean distance, and azimuth in degrees from
// the two horizontal position components.
func ClassifyObjects(objs []RecognizedObject) []ObjectReport {
	if len(objs) == 0 {
		return nil
	}
	out := make([]ObjectReport, len(objs))
	for i, o := range objs {
		x, y, z := o.Position[0], o.Position[1], o.Position[2]
		out[i] = ObjectReport{
			Color:    Classify(o.Colors[0], o.Colors[1], o.Colors[2]),
			Distance: math.Sqrt(x*x + y*y + z*z),
			Angle:    math.Atan2(y, x) * 180 / math.Pi,
		}
	}
	return out
}
