// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// mockMP3Reader hands out little-endian PCM in chunks of at most chunk bytes.
type mockMP3Reader struct {
	data  []byte
	chunk int
}

func (m *mockMP3Reader) SampleRate() int { return 44100 }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n := copy(buf[:min(len(buf), m.chunk)], m.data)
	m.data = m.data[n:]
	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(&mockMP3Reader{data: pcmBytes(16384, -16384, 0, 8192), chunk: 1 << 10})
	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Fatalf("source = %d channels at %d Hz", src.Channels(), src.SampleRate())
	}

	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v", n, err)
	}

	want := []float32{0.5, -0.5, 0, 0.25}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_SplitSample(t *testing.T) {
	t.Parallel()

	// three bytes per read splits every second sample across reads
	src := newSource(&mockMP3Reader{data: pcmBytes(16384, -16384, 8192, -8192), chunk: 3})

	var got []float32
	buf := make([]float32, 4)
	for range 10 {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
	}

	want := []float32{0.5, -0.5, 0.25, -0.25}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}
