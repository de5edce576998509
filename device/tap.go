// SPDX-License-Identifier: EPL-2.0

package device

import "sync"

// Tap collects mono samples pushed by a capture device callback. The tick
// loop reads its tail as the analysis window.
type Tap struct {
	mu      sync.Mutex
	samples []float32
}

// Write appends samples. It is safe to call from the capture goroutine.
func (t *Tap) Write(samples []float32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples = append(t.samples, samples...)
}

// Len returns the number of captured samples.
func (t *Tap) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.samples)
}

// Window copies the last len(dst) samples into dst. When fewer have been
// captured the front of dst is zero.
func (t *Tap) Window(dst []float32) []float32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	tail := t.samples[max(0, len(t.samples)-len(dst)):]
	pad := len(dst) - len(tail)
	clear(dst[:pad])
	copy(dst[pad:], tail)

	return dst
}

// Take returns everything captured and empties the tap.
func (t *Tap) Take() []float32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.samples
	t.samples = nil

	return out
}

// Reset drops everything captured.
func (t *Tap) Reset() {
	t.Take()
}
