// SPDX-License-Identifier: EPL-2.0

package waveform

import "math"

// Resolution is the number of columns per channel stored for recorded clips.
const Resolution = 1920

// Pair holds the averaged negative and positive excursion of one column.
// Neg is always <= 0 and Pos is always >= 0.
type Pair struct {
	Neg float32
	Pos float32
}

// Waveform is an ordered sequence of display columns.
type Waveform []Pair

// Columns returns how many columns of barWidth+gap pixels fit in width.
func Columns(width, barWidth, gap int) int {
	space := barWidth + gap
	if width <= 0 || space <= 0 {
		return 0
	}

	return int(math.Round(float64(width) / float64(space)))
}

// bucketSize is computed once from the full input length.
func bucketSize(n, columns int) int {
	if n == 0 || columns <= 0 {
		return 0
	}

	return int(math.Round(float64(n) / float64(columns)))
}

// bucket sums the positive and negative samples of column i.
// Indexes past the end of data contribute nothing.
func bucket(data []float32, i, size int) (pos, neg float64) {
	start := i * size
	end := min(start+size, len(data))
	for j := start; j < end; j++ {
		v := data[j]
		if v > 0 {
			pos += float64(v)
		} else {
			neg += float64(v)
		}
	}

	return pos, neg
}

// Reduce returns one (neg, pos) pair per column.
// The result is empty when data is empty, columns <= 0 or the bucket
// size rounds to zero.
func Reduce(data []float32, columns int) Waveform {
	size := bucketSize(len(data), columns)
	if size == 0 {
		return Waveform{}
	}

	out := make(Waveform, columns)
	div := float64(size)
	for i := range columns {
		pos, neg := bucket(data, i, size)
		out[i] = Pair{
			Neg: float32(neg / div),
			Pos: float32(pos / div),
		}
	}

	return out
}

// ReducePersist returns the flat persisted encoding of data: two values,
// 2·pos and 2·neg, per column.
func ReducePersist(data []float32, columns int) []float32 {
	size := bucketSize(len(data), columns)
	if size == 0 {
		return []float32{}
	}

	out := make([]float32, 0, 2*columns)
	div := float64(size)
	for i := range columns {
		pos, neg := bucket(data, i, size)
		out = append(out, float32(2*pos/div), float32(2*neg/div))
	}

	return out
}
