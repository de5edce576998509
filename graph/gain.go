// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"sync"
	"time"

	"github.com/ik5/audsub/audio"
)

// Gain scales its input. Level changes ramp linearly over a duration.
type Gain struct {
	src audio.Source

	mu     sync.Mutex
	value  float64
	target float64
	step   float64 // per frame
	left   int     // frames until target
}

// NewGain starts at unity.
func NewGain(src audio.Source) *Gain {
	return &Gain{src: src, value: 1, target: 1}
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }
func (g *Gain) Close() error {
	if err := g.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// SetLevel moves the gain to level over ramp. A zero ramp is immediate.
func (g *Gain) SetLevel(level float64, ramp time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.target = level
	frames := int(ramp.Seconds() * float64(g.src.SampleRate()))
	if frames <= 0 {
		g.value, g.step, g.left = level, 0, 0
		return
	}

	g.step = (level - g.value) / float64(frames)
	g.left = frames
}

// Level is the gain currently applied.
func (g *Gain) Level() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.value
}

// Target is the level the gain is ramping to.
func (g *Gain) Target() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.target
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)

	channels := g.src.Channels()
	g.mu.Lock()
	defer g.mu.Unlock()

	for f := 0; f+channels <= n; f += channels {
		if g.left > 0 {
			g.value += g.step
			if g.left--; g.left == 0 {
				g.value = g.target
			}
		}
		v := float32(g.value)
		for i := f; i < f+channels; i++ {
			dst[i] *= v
		}
	}

	return n, err
}
