// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsub/audio"
)

// Mixer sums inputs that share a sample rate and channel count. Inputs that
// end contribute silence; the mixer ends when all of them have.
type Mixer struct {
	inputs []audio.Source
	done   []bool
	tmp    []float32
}

func NewMixer(inputs ...audio.Source) (*Mixer, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	rate, channels := inputs[0].SampleRate(), inputs[0].Channels()
	for i, in := range inputs[1:] {
		if in.SampleRate() != rate {
			return nil, fmt.Errorf("input %d at %d Hz, want %d Hz: %w", i+1, in.SampleRate(), rate, ErrSampleRateMismatch)
		}
		if in.Channels() != channels {
			return nil, fmt.Errorf("input %d has %d channels, want %d: %w", i+1, in.Channels(), channels, ErrChannelCount)
		}
	}

	return &Mixer{inputs: inputs, done: make([]bool, len(inputs))}, nil
}

func (m *Mixer) SampleRate() int { return m.inputs[0].SampleRate() }
func (m *Mixer) Channels() int   { return m.inputs[0].Channels() }
func (m *Mixer) BufSize() int    { return m.inputs[0].BufSize() }

func (m *Mixer) Close() error {
	var errs []error
	for _, in := range m.inputs {
		if err := in.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Mixer) ReadSamples(dst []float32) (int, error) {
	channels := m.Channels()
	n := len(dst) - len(dst)%channels
	clear(dst[:n])
	if cap(m.tmp) < n {
		m.tmp = make([]float32, n)
	}
	tmp := m.tmp[:n]

	active := 0
	for i, in := range m.inputs {
		if m.done[i] {
			continue
		}

		got, err := in.ReadSamples(tmp)
		for j := range got {
			dst[j] += tmp[j]
		}

		switch {
		case err == io.EOF:
			m.done[i] = true
		case err != nil:
			return 0, fmt.Errorf("mixer input %d: %w", i, err)
		default:
			active++
		}
	}

	if active == 0 {
		return n, io.EOF
	}

	return n, nil
}
