// SPDX-License-Identifier: EPL-2.0

package dsp

import "fmt"

const (
	// CarrierFrequency is the tremolo rate used to lift the signal.
	CarrierFrequency = 17000.0
	// HighpassCutoff removes everything below the lifted band.
	HighpassCutoff = 16000.0
	// HighpassStages gives a -48 dB/octave slope.
	HighpassStages = 4
)

// Subliminal returns the hidden channel for mic at sampleRate: a full depth
// tremolo at CarrierFrequency followed by an 8th order high-pass at
// HighpassCutoff. mic is not modified.
func Subliminal(mic []float32, sampleRate int) ([]float32, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if CarrierFrequency >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("carrier at rate %d: %w", sampleRate, ErrCutoffAboveNyquist)
	}

	trem, err := NewTremolo(sampleRate, CarrierFrequency, 1)
	if err != nil {
		return nil, err
	}

	hp, err := NewHighpassCascade(sampleRate, HighpassCutoff, HighpassStages)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(mic))
	copy(out, mic)
	trem.Process(out)
	hp.Process(out)

	return out, nil
}
