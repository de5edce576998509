// SPDX-License-Identifier: EPL-2.0

// Package waveform reduces audio samples to compact display columns.
//
// A sample sequence is split into equally sized buckets, one per display
// column. Positive and negative samples of a bucket are accumulated
// separately, so every column carries a non-positive and a non-negative
// average:
//
//	w := waveform.Reduce(samples, waveform.Columns(960, 4, 1))
//	for i, p := range w {
//	    // draw bar i from p.Neg to p.Pos
//	}
//
// # Persisted Form
//
// Recorded clips store their waveform as two flat sequences (left, right),
// each holding (2·pos, 2·neg) per column:
//
//	p := waveform.Persisted{
//	    waveform.ReducePersist(left, waveform.Resolution),
//	    waveform.ReducePersist(right, waveform.Resolution),
//	}
//	data, _ := json.Marshal(p)
//
// Decode turns the flat form back into column pairs. Reducing a flat
// sequence with Reduce at half its length yields the same pairs, which is
// how a stored waveform is rescaled to any container width.
//
// # Live Recording
//
// Accumulator appends the reduction of each capture window to a growing
// waveform, so the recording so far can be drawn after every tick.
//
// # Degenerate Input
//
// Empty input, a non-positive column count or more columns than samples
// yield an empty result. Buckets that run past the end of the input read
// zeros instead of adjacent memory.
package waveform
