// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/internal/logger"
)

// Splitter outputs of a Router.
const (
	MainChannel       = 0
	SubliminalChannel = 1
	Outputs           = 2
)

// Router splits its input into two channels and feeds exactly one of them to
// its mono output. A channel the input does not have is silent.
//
// The connected channel is a single atomic value. A transition replaces it in
// one store and every ReadSamples call loads it once, so each block of output
// comes from exactly one channel and no block is ever left unconnected.
type Router struct {
	src  audio.Source
	conn atomic.Int32
	tmp  []float32
}

func NewRouter(src audio.Source) (*Router, error) {
	if src.Channels() < 1 {
		return nil, fmt.Errorf("router input has %d channels: %w", src.Channels(), ErrChannelCount)
	}

	return &Router{src: src, tmp: make([]float32, 4096)}, nil
}

func (r *Router) SampleRate() int { return r.src.SampleRate() }
func (r *Router) Channels() int   { return 1 }
func (r *Router) BufSize() int    { return r.src.BufSize() }
func (r *Router) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Connect routes splitter channel ch to the output. It returns the channel
// that was connected before.
func (r *Router) Connect(ch int) (int, error) {
	if ch < 0 || ch >= Outputs {
		return r.Connected(), fmt.Errorf("splitter channel %d: %w", ch, ErrChannelCount)
	}

	prev := int(r.conn.Swap(int32(ch)))
	if prev != ch {
		logger.Debugf("router: channel %d -> %d", prev, ch)
	}

	return prev, nil
}

// SetSubliminal connects the subliminal channel when enabled and the main
// channel otherwise.
func (r *Router) SetSubliminal(enabled bool) {
	target := MainChannel
	if enabled {
		target = SubliminalChannel
	}
	_, _ = r.Connect(target)
}

func (r *Router) Subliminal() bool { return r.Connected() == SubliminalChannel }
func (r *Router) Connected() int   { return int(r.conn.Load()) }

// Connections reports, per splitter channel, whether it feeds the output.
func (r *Router) Connections() [Outputs]bool {
	var c [Outputs]bool
	c[r.Connected()] = true
	return c
}

func (r *Router) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := r.src.Channels()
	need := len(dst) * channels
	if cap(r.tmp) < need {
		r.tmp = make([]float32, need)
	}
	r.tmp = r.tmp[:need]

	n, err := r.src.ReadSamples(r.tmp)
	frames := n / channels

	ch := r.Connected()
	if ch >= channels {
		clear(dst[:frames])
		return frames, err
	}
	for f := range frames {
		dst[f] = r.tmp[f*channels+ch]
	}

	return frames, err
}
