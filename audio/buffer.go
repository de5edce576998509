// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer holds fully decoded audio with one sample slice per channel.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer wraps planar channel data. Channels are expected to share a length.
func NewBuffer(sampleRate int, channels ...[]float32) *Buffer {
	return &Buffer{SampleRate: sampleRate, Data: channels}
}

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.Data) }

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Channel returns the samples of channel ch, or nil when ch does not exist.
func (b *Buffer) Channel(ch int) []float32 {
	if ch < 0 || ch >= len(b.Data) {
		return nil
	}
	return b.Data[ch]
}

// Interleave returns the samples frame by frame.
func (b *Buffer) Interleave() []float32 {
	channels, frames := b.Channels(), b.Frames()
	out := make([]float32, channels*frames)
	for ch, data := range b.Data {
		for f := range min(frames, len(data)) {
			out[f*channels+ch] = data[f]
		}
	}

	return out
}

const maxEmptyReads = 64

// ReadAll drains src into a Buffer. The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	buf := &Buffer{SampleRate: src.SampleRate(), Data: make([][]float32, channels)}
	tmp := make([]float32, size)
	empty := 0
	for {
		n, err := src.ReadSamples(tmp)
		n -= n % channels
		for i := 0; i < n; i += channels {
			for ch := range channels {
				buf.Data[ch] = append(buf.Data[ch], tmp[i+ch])
			}
		}

		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		// some decoders report empty reads before EOF
		if empty++; empty > maxEmptyReads {
			return buf, nil
		}
	}
}
