// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audsub/utils"
)

// Resampler streams src at another sample rate using Catmull-Rom
// interpolation over four frames. Channel count is preserved. When
// downsampling, a one-pole low-pass softens aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// hist holds frames t-1, t, t+1, t+2; output lies between hist[1] and hist[2].
	hist   [4][]float32
	ahead  int // real frames after hist[1]
	primed bool
	pos    float64

	frame   []float32
	lowpass []float32 // nil when not downsampling
	eof     bool
	err     error
}

const lowpassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}
	if r.ratio > 1 {
		r.lowpass = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull reads the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) bool {
	if r.eof {
		return false
	}

	var n int
	var err error
	for tries := 0; n == 0 && err == nil; tries++ {
		if tries > maxEmptyReads {
			err = io.EOF
			break
		}
		n, err = r.src.ReadSamples(r.frame)
	}
	if err != nil {
		r.eof = true
		if err != io.EOF {
			r.err = fmt.Errorf("%w", err)
		}
	}
	if n < r.channels {
		r.eof = true
		return false
	}

	copy(dst, r.frame)
	if r.lowpass != nil {
		if !r.primed {
			copy(r.lowpass, dst)
		}
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.lowpass[c]
			r.lowpass[c] = dst[c]
		}
	}

	return true
}

func (r *Resampler) prime() bool {
	if !r.pull(r.hist[1]) {
		return false
	}
	r.primed = true
	copy(r.hist[0], r.hist[1])

	for i := 2; i < 4; i++ {
		if r.pull(r.hist[i]) {
			r.ahead++
		} else {
			copy(r.hist[i], r.hist[i-1])
		}
	}

	return true
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() bool {
	if r.ahead == 0 {
		return false
	}

	first := r.hist[0]
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = first
	r.ahead--

	if r.pull(r.hist[3]) {
		r.ahead++
	} else {
		copy(r.hist[3], r.hist[2])
	}

	return true
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.ratio == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed && !r.prime() {
		return 0, r.finish()
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if !r.advance() {
				return written * r.channels, r.finish()
			}
		}
		if r.ahead == 0 {
			return written * r.channels, r.finish()
		}

		t := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], t)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

func (r *Resampler) finish() error {
	if r.err != nil {
		return r.err
	}
	return io.EOF
}
