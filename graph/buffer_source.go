// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audsub/audio"
)

// BufferSource plays a decoded buffer. While stopped, or once a non-looping
// buffer ends, it keeps producing silence so a device never runs dry.
type BufferSource struct {
	mu       sync.Mutex
	buf      *audio.Buffer
	pos      int // frame
	loop     bool
	channels int

	playing atomic.Bool
	ended   atomic.Bool
}

// NewBufferSource wraps buf. channels is taken from buf and stays fixed for
// the life of the node; later buffers are padded or truncated to it.
func NewBufferSource(buf *audio.Buffer, loop bool) *BufferSource {
	channels := buf.Channels()
	if channels == 0 {
		channels = 1
	}

	return &BufferSource{buf: buf, loop: loop, channels: channels}
}

func (b *BufferSource) SampleRate() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.SampleRate
}

func (b *BufferSource) Channels() int { return b.channels }
func (b *BufferSource) BufSize() int  { return 4096 }
func (b *BufferSource) Close() error {
	b.Stop()
	return nil
}

// SetBuffer replaces the buffer, stops playback and rewinds.
func (b *BufferSource) SetBuffer(buf *audio.Buffer) {
	b.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf = buf
	b.pos = 0
	b.ended.Store(false)
}

// Start plays from the current position. A buffer that ended is rewound.
func (b *BufferSource) Start() {
	if b.ended.Swap(false) {
		b.mu.Lock()
		b.pos = 0
		b.mu.Unlock()
	}
	b.playing.Store(true)
}

func (b *BufferSource) Stop()         { b.playing.Store(false) }
func (b *BufferSource) Playing() bool { return b.playing.Load() }

// Ended reports whether a non-looping buffer played to its end.
func (b *BufferSource) Ended() bool { return b.ended.Load() }

// Duration of the current buffer.
func (b *BufferSource) Duration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Duration()
}

// Position returns the playhead as time from the start of the buffer.
func (b *BufferSource) Position() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buf.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.pos) * time.Second / time.Duration(b.buf.SampleRate)
}

// Seek moves the playhead, clamped to the buffer.
func (b *BufferSource) Seek(at time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame := int(at.Seconds() * float64(b.buf.SampleRate))
	b.pos = max(0, min(frame, b.buf.Frames()))
	b.ended.Store(false)
}

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / b.channels
	n := frames * b.channels
	clear(dst[:n])
	if !b.playing.Load() {
		return n, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	total := b.buf.Frames()
	for f := 0; f < frames; f++ {
		if b.pos >= total {
			if !b.loop || total == 0 {
				b.playing.Store(false)
				b.ended.Store(true)
				break
			}
			b.pos = 0
		}

		for ch := range b.channels {
			if data := b.buf.Channel(ch); b.pos < len(data) {
				dst[f*b.channels+ch] = data[b.pos]
			}
		}
		b.pos++
	}

	return n, nil
}
