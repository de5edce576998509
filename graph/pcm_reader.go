// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/audsub/audio"
)

// PCMReader exposes a source as interleaved float32 little endian bytes, the
// layout output devices such as oto consume.
type PCMReader struct {
	src     audio.Source
	samples []float32
	enc     []byte
	pending []byte // part of enc not yet returned
	err     error
}

func NewPCMReader(src audio.Source) *PCMReader {
	return &PCMReader{src: src}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fill(len(p))
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	if n == 0 && r.err != nil {
		return 0, r.err
	}

	return n, nil
}

// fill encodes at least one frame, and enough samples to cover size bytes.
func (r *PCMReader) fill(size int) {
	channels := r.src.Channels()
	count := max(size/4, channels)
	count -= count % channels
	if cap(r.samples) < count {
		r.samples = make([]float32, count)
	}
	r.samples = r.samples[:count]

	n, err := r.src.ReadSamples(r.samples)
	if err != nil {
		r.err = err
	}
	if n == 0 && err == nil {
		// keep the device fed while the source has nothing ready
		n = count
		clear(r.samples)
	}

	if cap(r.enc) < n*4 {
		r.enc = make([]byte, n*4)
	}
	r.enc = r.enc[:n*4]
	for i, v := range r.samples[:n] {
		binary.LittleEndian.PutUint32(r.enc[i*4:], math.Float32bits(v))
	}
	r.pending = r.enc
}

var _ io.Reader = (*PCMReader)(nil)
