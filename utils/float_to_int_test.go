// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "full scale", input: 1, want: math.MaxInt16},
		{name: "negative full scale", input: -1, want: -math.MaxInt16},
		{name: "half", input: 0.5, want: 16383},
		{name: "clamps above", input: 1.7, want: math.MaxInt16},
		{name: "clamps below", input: -3, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	if got := Int16ToFloat32(math.MinInt16); got != -1 {
		t.Errorf("Int16ToFloat32(MinInt16) = %v, want -1", got)
	}
	if got := Int16ToFloat32(16384); got != 0.5 {
		t.Errorf("Int16ToFloat32(16384) = %v, want 0.5", got)
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, depth int
		want     float32
	}{
		{v: 64, depth: 8, want: 0.5},
		{v: -16384, depth: 16, want: -0.5},
		{v: 4194304, depth: 24, want: 0.5},
		{v: -1073741824, depth: 32, want: -0.5},
		{v: 16384, depth: 12, want: 0.5},
	}

	for _, tt := range tests {
		if got := IntToFloat32(tt.v, tt.depth); got != tt.want {
			t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.v, tt.depth, got, tt.want)
		}
	}
}
