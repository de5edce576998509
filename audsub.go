// SPDX-License-Identifier: EPL-2.0

package audsub

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/device"
	"github.com/ik5/audsub/formats/aiff"
	"github.com/ik5/audsub/formats/mp3"
	"github.com/ik5/audsub/formats/vorbis"
	"github.com/ik5/audsub/formats/wav"
	"github.com/ik5/audsub/internal/logger"
	"github.com/ik5/audsub/waveform"
)

// NewRegistry returns a registry with every bundled decoder, keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// Open decodes path with the decoder registered for its extension. Closing
// the source closes the file.
func Open(reg *audio.Registry, path string) (audio.Source, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audio: %w", err)
	}

	src, err := reg.Decode(format, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// PersistedWaveform reads src to the end and returns its stored waveform at
// waveform.Resolution columns. Each channel is peak normalized first; a mono
// source is stored on both channels.
func PersistedWaveform(src audio.Source) (waveform.Persisted, error) {
	buf, err := audio.ReadAll(src)
	if err != nil {
		return waveform.Persisted{}, fmt.Errorf("reading source: %w", err)
	}

	left := buf.Channel(0)
	right := buf.Channel(1)
	if right == nil {
		right = left
	}

	return waveform.Persisted{
		waveform.ReducePersist(waveform.Normalize(left), waveform.Resolution),
		waveform.ReducePersist(waveform.Normalize(right), waveform.Resolution),
	}, nil
}

const maxEmptyReads = 64

// Capture feeds src to rec the way a microphone would: downmixed to mono at
// the recorder's rate, one analysis window per tick. onFrame, when set, sees
// every tick. Reads that return no samples do not tick. The recorder is
// stopped at the end of src and its clip returned.
func Capture(src audio.Source, rec *device.Recorder, onFrame func(device.Frame)) (*device.Clip, error) {
	mono := audio.NewMonoMixer(audio.NewResampler(src, rec.SampleRate()))

	if err := rec.Start(); err != nil {
		return nil, err
	}

	window := make([]float32, rec.Options().WindowSize)
	empty := 0
	for {
		n, err := mono.ReadSamples(window)
		if n > 0 {
			empty = 0
			rec.Tap().Write(window[:n])
			frame := rec.Tick()
			if onFrame != nil {
				onFrame(frame)
			}
		}

		if err == io.EOF {
			break
		}
		if err == nil && n == 0 {
			// a source that keeps returning nothing is treated as ended
			if empty++; empty > maxEmptyReads {
				logger.Warnf("capture: no samples after %d reads, stopping", maxEmptyReads)
				break
			}
			continue
		}
		if err != nil {
			if _, stopErr := rec.Stop(); stopErr != nil {
				logger.Error("capture: stopping recorder", stopErr)
			}
			return nil, fmt.Errorf("capturing: %w", err)
		}
	}

	return rec.Stop()
}
