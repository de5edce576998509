// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// Tremolo modulates amplitude with a sine LFO swinging between 1-depth and 1.
type Tremolo struct {
	depth float64
	phase float64
	inc   float64
}

// NewTremolo creates a tremolo at frequency Hz. depth is clamped to [0,1].
func NewTremolo(sampleRate int, frequency, depth float64) (*Tremolo, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	return &Tremolo{
		depth: min(max(depth, 0), 1),
		inc:   2 * math.Pi * frequency / float64(sampleRate),
	}, nil
}

// Gain returns the current modulation gain and advances the LFO.
func (t *Tremolo) Gain() float64 {
	g := 1 - t.depth/2 + t.depth/2*math.Sin(t.phase)
	t.phase = math.Mod(t.phase+t.inc, 2*math.Pi)

	return g
}

// Process modulates buf in place.
func (t *Tremolo) Process(buf []float32) {
	for i, v := range buf {
		buf[i] = float32(float64(v) * t.Gain())
	}
}
