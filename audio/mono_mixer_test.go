// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"testing"

	"github.com/ik5/audsub/internal/audiotest"
)

func TestMonoMixer_AveragesChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		value    func(ch int) float32
		want     float32
	}{
		{name: "stereo", channels: 2, value: func(ch int) float32 { return float32(ch) }, want: 0.5},
		{name: "quad", channels: 4, value: func(ch int) float32 { return float32(ch) * 0.25 }, want: 0.375},
		{name: "mono passthrough", channels: 1, value: func(int) float32 { return 0.3 }, want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, func(_, ch int) float32 { return tt.value(ch) })
			mono := NewMonoMixer(src)

			if mono.Channels() != 1 || mono.SampleRate() != 8000 {
				t.Fatalf("mixer = %d channels at %d Hz", mono.Channels(), mono.SampleRate())
			}

			buf := make([]float32, 64)
			total := 0
			for {
				n, err := mono.ReadSamples(buf)
				for i := range n {
					if buf[i] != tt.want {
						t.Fatalf("sample = %v, want %v", buf[i], tt.want)
					}
				}
				total += n
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if total != 100 {
				t.Errorf("read %d frames, want 100", total)
			}
		})
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mono := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	if n, err := mono.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}
