package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds consumer-side settings, loadable from simbridge.toml.
// Zero-valued fields take defaults so a partial file stays valid.
type Config struct {
	DataDir string `toml:"data_dir"`

	// MonitorInterval is the pause between behavior-monitor samples.
	MonitorIntervalSeconds int `toml:"monitor_interval_seconds"`

	// MonitorMaxSeconds bounds one monitoring window; longer requests
	// are clamped, never rejected.
	MonitorMaxSeconds int `toml:"monitor_max_seconds"`

	// CharacterLimit truncates full-state dumps.
	CharacterLimit int `toml:"character_limit"`

	// LogTailMax bounds how many log lines one tail request may return.
	LogTailMax int `toml:"log_tail_max"`

	// Throttle is the producer publish throttle (status writes happen
	// every Throttle-th publish call). Only the demo producer reads it;
	// an embedded controller passes its own value to the bridge.
	Throttle int `toml:"throttle"`

	// FrameCapacity bounds the producer's on-disk camera frame ring.
	FrameCapacity int `toml:"frame_capacity"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DataDir:                "data",
		MonitorIntervalSeconds: 2,
		MonitorMaxSeconds:      120,
		CharacterLimit:         25000,
		LogTailMax:             500,
		Throttle:               5,
		FrameCapacity:          50,
	}
}

// LoadConfig reads a TOML config file and fills unset fields with
// defaults. An empty path returns the defaults outright.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if loaded.DataDir != "" {
		cfg.DataDir = loaded.DataDir
	}
	if loaded.MonitorIntervalSeconds > 0 {
		cfg.MonitorIntervalSeconds = loaded.MonitorIntervalSeconds
	}
	if loaded.MonitorMaxSeconds > 0 {
		cfg.MonitorMaxSeconds = loaded.MonitorMaxSeconds
	}
	if loaded.CharacterLimit > 0 {
		cfg.CharacterLimit = loaded.CharacterLimit
	}
	if loaded.LogTailMax > 0 {
		cfg.LogTailMax = loaded.LogTailMax
	}
	if loaded.Throttle > 0 {
		cfg.Throttle = loaded.Throttle
	}
	if loaded.FrameCapacity > 0 {
		cfg.FrameCapacity = loaded.FrameCapacity
	}
	return cfg, nil
}

// MonitorInterval returns the sample interval as a duration.
func (c Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalSeconds) * time.Second
}

// MonitorMax returns the monitoring window bound as a duration.
func (c Config) MonitorMax() time.Duration {
	return time.Duration(c.MonitorMaxSeconds) * time.Second
}
