// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	left := Waveform{{Neg: -0.5, Pos: 0.5}, {Neg: -0.123, Pos: 0.987}, {Neg: 0, Pos: 0}}
	right := Waveform{{Neg: -1, Pos: 0.25}, {Neg: -0.3333, Pos: 0.0001}, {Neg: -0.7, Pos: 1}}

	gotLeft, gotRight, err := Decode(Encode(left, right))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for _, c := range []struct {
		name      string
		got, want Waveform
	}{
		{name: "left", got: gotLeft, want: left},
		{name: "right", got: gotRight, want: right},
	} {
		if len(c.got) != len(c.want) {
			t.Fatalf("%s: len = %d, want %d", c.name, len(c.got), len(c.want))
		}
		for i := range c.want {
			if c.got[i] != c.want[i] {
				t.Errorf("%s[%d] = %+v, want %+v", c.name, i, c.got[i], c.want[i])
			}
		}
	}
}

func TestEncode_MatchesReducePersist(t *testing.T) {
	t.Parallel()

	data := make([]float32, 3840)
	for i := range data {
		data[i] = float32(math.Sin(float64(i) * 0.07))
	}

	encoded := Encode(Reduce(data, 96), nil)
	direct := ReducePersist(data, 96)

	if len(encoded[0]) != len(direct) {
		t.Fatalf("len = %d, want %d", len(encoded[0]), len(direct))
	}
	for i := range direct {
		if math.Abs(float64(encoded[0][i]-direct[i])) > 1e-6 {
			t.Errorf("value %d = %v, want %v", i, encoded[0][i], direct[i])
		}
	}
}

func TestDecode_OddLength(t *testing.T) {
	t.Parallel()

	_, _, err := Decode(Persisted{{1, -1, 0.5}, {}})
	if !errors.Is(err, ErrOddLength) {
		t.Errorf("Decode() error = %v, want ErrOddLength", err)
	}
}

func TestPersisted_JSON(t *testing.T) {
	t.Parallel()

	p := Persisted{{1, -1}, {0.5, -0.25}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if string(data) != "[[1,-1],[0.5,-0.25]]" {
		t.Errorf("Marshal() = %s", data)
	}

	got, err := ParsePersisted(data)
	if err != nil {
		t.Fatalf("ParsePersisted() error = %v", err)
	}
	if got.Columns() != 1 {
		t.Errorf("Columns() = %d, want 1", got.Columns())
	}
	if got[1][1] != -0.25 {
		t.Errorf("right neg = %v, want -0.25", got[1][1])
	}
}

func TestPersisted_MarshalEmpty(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Persisted{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "[[],[]]" {
		t.Errorf("Marshal() = %s, want [[],[]]", data)
	}
}

func TestParsePersisted_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "one channel", data: "[[1,-1]]", want: ErrChannelCount},
		{name: "three channels", data: "[[],[],[]]", want: ErrChannelCount},
		{name: "null", data: "null", want: ErrChannelCount},
		{name: "odd channel", data: "[[1,-1,2],[]]", want: ErrOddLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParsePersisted([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("ParsePersisted(%s) error = %v, want %v", tt.data, err, tt.want)
			}
		})
	}

	if _, err := ParsePersisted([]byte("{")); err == nil {
		t.Error("ParsePersisted() accepted malformed JSON")
	}
}
