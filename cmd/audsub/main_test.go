// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/device"
	"github.com/ik5/audsub/formats/wav"
	"github.com/ik5/audsub/meter"
	"github.com/ik5/audsub/waveform"
)

func init() {
	color.NoColor = true
}

func TestMeterBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reading meter.Reading
		filled  int
	}{
		{"idle", meter.Reading{Normalized: 0.8, Idle: true}, 0},
		{"below range", meter.Reading{Normalized: -0.4}, 0},
		{"half", meter.Reading{Normalized: 0.5}, barCells / 2},
		{"overshoot", meter.Reading{Normalized: 1.3}, barCells},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bar := meterBar(tt.reading)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("filled cells = %d, want %d", got, tt.filled)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "·"); got != barCells {
				t.Errorf("bar has %d cells, want %d", got, barCells)
			}
		})
	}
}

func TestDecodeF32(t *testing.T) {
	t.Parallel()

	want := []float32{0.5, -1, 0.25}
	in := make([]byte, 0, 13)
	for _, v := range want {
		in = binary.LittleEndian.AppendUint32(in, math.Float32bits(v))
	}
	in = append(in, 0xff) // partial sample is dropped

	if got := decodeF32(nil, in); !slices.Equal(got, want) {
		t.Errorf("decodeF32() = %v, want %v", got, want)
	}
}

func testEnv(t *testing.T) (*env, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	e := newEnv(device.DefaultOptions())
	e.out = &out
	return e, &out
}

func writeClip(t *testing.T, dir string) string {
	t.Helper()

	data := make([]float32, 8000)
	for i := range data {
		data[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 8000))
	}

	path := filepath.Join(dir, "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := wav.WriteBuffer(f, audio.NewBuffer(8000, data, data)); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWaveform(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeClip(t, dir)
	e, out := testEnv(t)

	if err := runWaveform(context.Background(), e, []string{in}); err != nil {
		t.Fatal(err)
	}
	stored, err := waveform.ParsePersisted(bytes.TrimSpace(out.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if stored.Columns() != waveform.Resolution {
		t.Errorf("columns = %d", stored.Columns())
	}

	jsonPath := filepath.Join(dir, "out.json")
	if err := runWaveform(context.Background(), e, []string{"-o", jsonPath, in}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("waveform file: %v", err)
	}
}

func TestRunRecordFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeClip(t, dir)
	e, _ := testEnv(t)

	wavPath, jsonPath := filepath.Join(dir, "clip.wav"), filepath.Join(dir, "clip.json")
	if err := runRecord(context.Background(), e, []string{"-from", in, wavPath, jsonPath}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := waveform.ParsePersisted(data); err != nil {
		t.Errorf("stored waveform: %v", err)
	}

	p, err := loadPlayer(e, wavPath, jsonPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if left, right := p.Waveform(); len(left) != e.opts.Columns() || len(right) != len(left) {
		t.Errorf("player columns = %d/%d", len(left), len(right))
	}
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	e, _ := testEnv(t)
	tests := []struct {
		name string
		run  func() error
	}{
		{"no command", func() error { return run("", nil) }},
		{"unknown command", func() error { return run("", []string{"mix"}) }},
		{"waveform without input", func() error { return runWaveform(context.Background(), e, nil) }},
		{"play with one path", func() error { return runPlay(context.Background(), e, []string{"a.wav"}) }},
		{"record bad flag", func() error { return runRecord(context.Background(), e, []string{"-nope"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.run(); !errors.Is(err, errUsage) {
				t.Errorf("error = %v, want usage", err)
			}
		})
	}
}
