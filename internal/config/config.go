// Package config holds the validated runtime configuration. The host
// owns these values; the core only ever sees the few it needs, passed in
// explicitly each tick.
package config

import (
	"fmt"
	"time"
)

type Overlay struct {
	LeftImage  string
	RightImage string
	// DurationMS is how long an indicator stays visible after a click.
	DurationMS int
	// DiameterPX is the rendered indicator size; opaque to the core.
	DiameterPX int
	// MaxSimultaneous fixes the slot-pool capacity for the process
	// lifetime; changing it means rebuilding the pool.
	MaxSimultaneous int
}

type Monitor struct {
	// Width/Height of the captured monitor. Zero means auto-detect.
	Width  int
	Height int
	// Scale is the HiDPI factor applied to hook coordinates. Zero means
	// auto-detect.
	Scale float64
}

type OBS struct {
	URL      string
	Password string
	// Scene to place indicators in. Empty means the current program scene.
	Scene string
	// CaptureSource names the display-capture scene item whose
	// crop/transform drives coordinate mapping. Empty means a plain
	// monitor-to-canvas mapping.
	CaptureSource string
}

type Sound struct {
	Enabled bool
	File    string
}

type Config struct {
	Overlay Overlay
	Monitor Monitor
	OBS     OBS
	Sound   Sound
	// TickRateHz is the cadence of the tick loop; it bounds how precisely
	// indicator durations are honored (~16ms at 60Hz).
	TickRateHz int
}

func NewConfig() *Config {
	return &Config{
		Overlay: Overlay{
			DurationMS:      350,
			DiameterPX:      60,
			MaxSimultaneous: 5,
		},
		OBS: OBS{
			URL: "ws://localhost:4455",
		},
		TickRateHz: 60,
	}
}

// Validate rejects configurations the rest of the pipeline cannot degrade
// gracefully from. Degenerate geometry values are not errors (the mapper
// sanitizes them); this only catches values that would wedge the loop.
func (c *Config) Validate() error {
	if c.Overlay.DurationMS <= 0 {
		return fmt.Errorf("circle duration must be positive, got %dms", c.Overlay.DurationMS)
	}
	if c.Overlay.MaxSimultaneous < 0 {
		return fmt.Errorf("max simultaneous circles cannot be negative, got %d", c.Overlay.MaxSimultaneous)
	}
	if c.TickRateHz <= 0 {
		return fmt.Errorf("tick rate must be positive, got %dHz", c.TickRateHz)
	}
	if c.Sound.Enabled && c.Sound.File == "" {
		return fmt.Errorf("click sound enabled but no sound file configured")
	}
	return nil
}

// Duration returns the indicator lifetime as a time.Duration.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.Overlay.DurationMS) * time.Millisecond
}

// TickInterval returns the period of the tick loop.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}
