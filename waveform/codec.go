// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"encoding/json"
	"fmt"
)

// Persisted is the storage and wire form of a clip waveform: the left and
// right channels as flat (2·pos, 2·neg) sequences. It marshals to a JSON
// array of exactly two numeric arrays.
type Persisted [2][]float32

// Columns returns the number of columns stored per channel.
func (p Persisted) Columns() int {
	return len(p[0]) / 2
}

// Validate checks that both channels are made of whole (pos, neg) pairs.
func (p Persisted) Validate() error {
	for ch, flat := range p {
		if len(flat)%2 != 0 {
			return fmt.Errorf("channel %d: %w", ch, ErrOddLength)
		}
	}

	return nil
}

// MarshalJSON encodes nil channels as empty arrays rather than null.
func (p Persisted) MarshalJSON() ([]byte, error) {
	out := [2][]float32{p[0], p[1]}
	for i := range out {
		if out[i] == nil {
			out[i] = []float32{}
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON rejects documents that do not hold exactly two channels.
func (p *Persisted) UnmarshalJSON(data []byte) error {
	var channels [][]float32
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("decoding persisted waveform: %w", err)
	}

	if len(channels) != 2 {
		return fmt.Errorf("got %d channels: %w", len(channels), ErrChannelCount)
	}

	p[0], p[1] = channels[0], channels[1]

	return p.Validate()
}

// ParsePersisted decodes the JSON form of a clip waveform.
func ParsePersisted(data []byte) (Persisted, error) {
	var p Persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return Persisted{}, err
	}

	return p, nil
}

// Encode flattens a left/right waveform pair into its persisted form.
// It produces the same values as ReducePersist over the original samples.
func Encode(left, right Waveform) Persisted {
	return Persisted{encodeChannel(left), encodeChannel(right)}
}

func encodeChannel(w Waveform) []float32 {
	flat := make([]float32, 0, 2*len(w))
	for _, p := range w {
		flat = append(flat, 2*p.Pos, 2*p.Neg)
	}

	return flat
}

// Decode rebuilds the left and right column pairs of a persisted waveform.
func Decode(p Persisted) (left, right Waveform, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	return decodeChannel(p[0]), decodeChannel(p[1]), nil
}

func decodeChannel(flat []float32) Waveform {
	w := make(Waveform, len(flat)/2)
	for i := range w {
		w[i] = Pair{
			Neg: flat[2*i+1] / 2,
			Pos: flat[2*i] / 2,
		}
	}

	return w
}
