// SPDX-License-Identifier: EPL-2.0

package device

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/dsp"
	"github.com/ik5/audsub/formats/wav"
	"github.com/ik5/audsub/internal/logger"
	"github.com/ik5/audsub/waveform"
)

// Clip is a finished recording: a stereo 16 bit WAV whose second channel is
// the subliminal rendition of the first, and the stored waveform of both.
type Clip struct {
	WAV        []byte
	Waveform   waveform.Persisted
	SampleRate int
	Duration   time.Duration
}

// NewClip builds a clip from mono microphone samples. When the sample rate
// is too low to carry the subliminal band, channel 1 is silent.
func NewClip(mic []float32, sampleRate int) (*Clip, error) {
	sub, err := dsp.Subliminal(mic, sampleRate)
	switch {
	case errors.Is(err, dsp.ErrCutoffAboveNyquist):
		logger.Warnf("clip: %d Hz cannot carry the subliminal channel, leaving it silent", sampleRate)
		sub = make([]float32, len(mic))
	case err != nil:
		return nil, fmt.Errorf("subliminal channel: %w", err)
	}

	buf := audio.NewBuffer(sampleRate, mic, sub)

	var out bytes.Buffer
	if err := wav.WriteBuffer(&out, buf); err != nil {
		return nil, fmt.Errorf("encoding clip: %w", err)
	}

	clip := &Clip{
		WAV: out.Bytes(),
		Waveform: waveform.Persisted{
			waveform.ReducePersist(waveform.Normalize(mic), waveform.Resolution),
			waveform.ReducePersist(waveform.Normalize(sub), waveform.Resolution),
		},
		SampleRate: sampleRate,
		Duration:   buf.Duration(),
	}

	return clip, nil
}
