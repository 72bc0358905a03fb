// Package ports defines the interfaces (contracts) that adapters must implement,
// plus the schema-free document type both sides of the bridge exchange.
// Domain logic depends only on these types, never on concrete implementations.
package ports

import "time"

// Timestamp layout used in every document the bridge writes.
// ISO-8601 with sub-second precision, producer-local clock.
const TimestampLayout = time.RFC3339Nano

// Document is a dynamically-keyed JSON object. The status file has no fixed
// schema beyond a required "timestamp" field; producers contribute nested
// maps (pose, sensors, arm, ...) at will. Typed accessors cover the
// well-known fields, everything else stays reachable through plain map access.
type Document map[string]any

// String returns the string value under key.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Float returns the numeric value under key as a float64.
// JSON numbers always decode as float64, but int is accepted for
// documents built in-process.
func (d Document) Float(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Int returns the numeric value under key truncated to an int.
func (d Document) Int(key string) (int, bool) {
	f, ok := d.Float(key)
	return int(f), ok
}

// Map returns the nested document under key.
func (d Document) Map(key string) (Document, bool) {
	switch v := d[key].(type) {
	case Document:
		return v, true
	case map[string]any:
		return Document(v), true
	}
	return nil, false
}

// Floats returns the numeric slice under key. Non-numeric elements
// terminate the conversion; a partial prefix of valid numbers is returned
// as long as at least one element converted.
func (d Document) Floats(key string) ([]float64, bool) {
	raw, ok := d[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, e := range raw {
		f, ok := e.(float64)
		if !ok {
			break
		}
		out = append(out, f)
	}
	return out, len(out) > 0
}

// Timestamp parses the required "timestamp" field. Returns the zero time
// when the field is absent or unparsable — consumers treat that as
// "staleness unknown", not as an error.
func (d Document) Timestamp() (time.Time, bool) {
	s, ok := d.String("timestamp")
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Producers on a coarser clock may emit second precision.
		t, err = time.Parse(time.RFC3339, s)
	}
	return t, err == nil
}

// Pose returns the robot's 2D position and heading from the "pose" field
// ([x, y] or [x, y, theta]), falling back to "position". The nested
// per-robot shape (robots.main.pose) is handled by callers via Robot.
func (d Document) Pose() ([]float64, bool) {
	if p, ok := d.Floats("pose"); ok && len(p) >= 2 {
		return p, true
	}
	if p, ok := d.Floats("position"); ok && len(p) >= 2 {
		return p, true
	}
	return nil, false
}

// Mode returns the "mode" field, falling back to "state".
func (d Document) Mode() (string, bool) {
	if m, ok := d.String("mode"); ok {
		return m, true
	}
	return d.String("state")
}

// Robot resolves the per-robot sub-document. The canonical document shape
// is flat (single robot); the nested robots map is a compatibility shim
// from the multi-robot era. Robot("main") on a flat document returns the
// document itself.
func (d Document) Robot(name string) Document {
	if robots, ok := d.Map("robots"); ok {
		if r, ok := robots.Map(name); ok {
			return r
		}
	}
	return d
}
