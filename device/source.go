// SPDX-License-Identifier: EPL-2.0

package device

import (
	"github.com/ik5/audsub/meter"
	"github.com/ik5/audsub/waveform"
)

// WaveformSource is what a renderer needs from a widget on every tick.
type WaveformSource interface {
	// Waveform returns the display waveform of both channels.
	Waveform() (left, right waveform.Waveform)
	// Resize changes the render width.
	Resize(width int)
	// Tick reads one analysis window and advances the meter.
	Tick() Frame
}

// Frame is the result of one tick.
type Frame struct {
	// Playhead is the play position in pixels. It is 0 for recorders.
	Playhead int
	// Appended holds the columns a recorder added on this tick.
	Appended waveform.Waveform
	Level    meter.Reading
	// Done is set once nothing is playing or recording and the meter is
	// idle; the tick loop should stop.
	Done bool
}

var (
	_ WaveformSource = (*Player)(nil)
	_ WaveformSource = (*Recorder)(nil)
)
