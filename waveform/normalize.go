// SPDX-License-Identifier: EPL-2.0

package waveform

import "github.com/viterin/vek/vek32"

// Normalize returns a copy of data scaled by its peak absolute value, so the
// loudest sample becomes ±1. Silent or empty input is returned as a copy.
func Normalize(data []float32) []float32 {
	out := make([]float32, len(data))
	if len(data) == 0 {
		return out
	}

	vek32.Abs_Into(out, data)
	peak := vek32.Max(out)
	copy(out, data)
	if peak == 0 {
		return out
	}

	vek32.DivNumber_Inplace(out, peak)

	return out
}
