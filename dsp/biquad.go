// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"
)

// Butterworth Q values per second-order stage, indexed by stage count.
var butterworthQ = map[int][]float64{
	1: {0.7071},
	2: {0.5412, 1.3065},
	3: {0.5176, 0.7071, 1.9319},
	4: {0.5098, 0.6013, 0.9000, 2.5629},
}

// Biquad is a direct form I second-order IIR section.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

// NewHighpass designs a high-pass section at cutoff Hz with quality q.
func NewHighpass(sampleRate int, cutoff, q float64) (*Biquad, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if cutoff <= 0 || cutoff >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("high-pass at %.0f Hz, rate %d: %w", cutoff, sampleRate, ErrCutoffAboveNyquist)
	}

	w0 := 2 * math.Pi * cutoff / float64(sampleRate)
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	return &Biquad{
		b0: (1 + cosW0) / 2 / a0,
		b1: -(1 + cosW0) / a0,
		b2: (1 + cosW0) / 2 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

// Filter processes one sample.
func (b *Biquad) Filter(x float64) float64 {
	y := b.b0*x + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2
	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y

	return y
}

// Process filters buf in place.
func (b *Biquad) Process(buf []float32) {
	for i, v := range buf {
		buf[i] = float32(b.Filter(float64(v)))
	}
}

// Reset clears the filter history.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

// Cascade chains biquads to steepen the slope by 12 dB/octave per stage.
type Cascade struct {
	stages []*Biquad
}

// NewHighpassCascade builds a Butterworth high-pass of 2·stages order.
// stages is clamped to [1,4].
func NewHighpassCascade(sampleRate int, cutoff float64, stages int) (*Cascade, error) {
	stages = min(max(stages, 1), 4)

	c := &Cascade{stages: make([]*Biquad, 0, stages)}
	for _, q := range butterworthQ[stages] {
		b, err := NewHighpass(sampleRate, cutoff, q)
		if err != nil {
			return nil, err
		}
		c.stages = append(c.stages, b)
	}

	return c, nil
}

// Filter processes one sample through every stage.
func (c *Cascade) Filter(x float64) float64 {
	for _, b := range c.stages {
		x = b.Filter(x)
	}

	return x
}

// Process filters buf in place.
func (c *Cascade) Process(buf []float32) {
	for i, v := range buf {
		buf[i] = float32(c.Filter(float64(v)))
	}
}

// Reset clears the history of every stage.
func (c *Cascade) Reset() {
	for _, b := range c.stages {
		b.Reset()
	}
}
