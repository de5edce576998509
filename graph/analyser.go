// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"sync"

	"github.com/ik5/audsub/audio"
)

// Analyser passes its input through unchanged and keeps the most recent
// window of it, downmixed to mono, for meters and scopes.
type Analyser struct {
	src audio.Source

	mu   sync.Mutex
	ring []float32
	head int
}

func NewAnalyser(src audio.Source, size int) *Analyser {
	return &Analyser{src: src, ring: make([]float32, max(size, 1))}
}

func (a *Analyser) SampleRate() int { return a.src.SampleRate() }
func (a *Analyser) Channels() int   { return a.src.Channels() }
func (a *Analyser) BufSize() int    { return a.src.BufSize() }
func (a *Analyser) Close() error {
	if err := a.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Size is the window length in frames.
func (a *Analyser) Size() int { return len(a.ring) }

// Snapshot copies the window, oldest first, into dst and returns it.
// dst is reallocated when it is too short.
func (a *Analyser) Snapshot(dst []float32) []float32 {
	if cap(dst) < len(a.ring) {
		dst = make([]float32, len(a.ring))
	}
	dst = dst[:len(a.ring)]

	a.mu.Lock()
	defer a.mu.Unlock()

	n := copy(dst, a.ring[a.head:])
	copy(dst[n:], a.ring[:a.head])

	return dst
}

// Reset clears the window.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	clear(a.ring)
	a.head = 0
}

func (a *Analyser) ReadSamples(dst []float32) (int, error) {
	n, err := a.src.ReadSamples(dst)

	channels := a.src.Channels()
	scale := 1 / float32(channels)

	a.mu.Lock()
	defer a.mu.Unlock()

	for f := 0; f+channels <= n; f += channels {
		var sum float32
		for _, v := range dst[f : f+channels] {
			sum += v
		}
		a.ring[a.head] = sum * scale
		a.head = (a.head + 1) % len(a.ring)
	}

	return n, err
}
