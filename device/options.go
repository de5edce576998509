// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"time"

	"github.com/ik5/audsub/meter"
	"github.com/ik5/audsub/waveform"
)

// Waveform drawing styles.
const (
	TypeWaveform = "waveform"
	TypeBar      = "bar"
)

// Options configures a Player or Recorder.
type Options struct {
	// Width is the render width in pixels.
	Width    int `yaml:"width"`
	BarWidth int `yaml:"bar_width"`
	// BarGap is nil when unset. Use Gap to read it.
	BarGap *int   `yaml:"bar_gap,omitempty"`
	Type   string `yaml:"type"`

	SampleRate int `yaml:"sample_rate"`
	// WindowSize is the analysis window read once per tick.
	WindowSize      int           `yaml:"window_size"`
	ReductionFactor int           `yaml:"reduction_factor"`
	MeterStepDB     float64       `yaml:"meter_step_db"`
	VolumeRamp      time.Duration `yaml:"volume_ramp"`
}

func DefaultOptions() Options {
	return Options{
		Width:           800,
		BarWidth:        1,
		Type:            TypeWaveform,
		SampleRate:      44100,
		WindowSize:      1024,
		ReductionFactor: waveform.ReductionFactor,
		MeterStepDB:     meter.DefaultStep,
		VolumeRamp:      200 * time.Millisecond,
	}
}

// Normalize fills unset fields from DefaultOptions and applies the drawing
// style: waveform draws one pixel columns without gaps, bar keeps its width
// and defaults an unset gap to 1. An explicit gap of 0 is kept.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.Type == "" {
		o.Type = def.Type
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.SampleRate <= 0 {
		o.SampleRate = def.SampleRate
	}
	if o.WindowSize <= 0 {
		o.WindowSize = def.WindowSize
	}
	if o.ReductionFactor <= 0 {
		o.ReductionFactor = def.ReductionFactor
	}
	if o.MeterStepDB <= 0 {
		o.MeterStepDB = def.MeterStepDB
	}
	if o.VolumeRamp < 0 {
		o.VolumeRamp = 0
	}

	switch o.Type {
	case TypeWaveform:
		o.BarWidth, o.BarGap = 1, nil
	case TypeBar:
		if o.BarWidth <= 0 {
			o.BarWidth = 2
		}
		if o.BarGap == nil {
			o.BarGap = GapOf(1)
		}
	}

	return o
}

// Validate reports options Normalize cannot repair.
func (o Options) Validate() error {
	if o.Type != TypeWaveform && o.Type != TypeBar {
		return fmt.Errorf("%q: %w", o.Type, ErrUnknownType)
	}
	if o.BarGap != nil && *o.BarGap < 0 {
		return fmt.Errorf("bar gap %d: %w", *o.BarGap, ErrInvalidOptions)
	}
	return nil
}

// GapOf returns a pointer for Options.BarGap.
func GapOf(px int) *int { return &px }

// Gap is the configured gap between bars, 0 when unset or in waveform mode.
func (o Options) Gap() int {
	if o.Type == TypeWaveform || o.BarGap == nil {
		return 0
	}
	return *o.BarGap
}

// Columns is the number of display columns for the current width.
func (o Options) Columns() int {
	return waveform.Columns(o.Width, o.BarWidth, o.Gap())
}
