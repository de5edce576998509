// SPDX-License-Identifier: EPL-2.0

package waveform

// ReductionFactor is the number of window samples per column appended on
// each live capture tick.
const ReductionFactor = 1000

// Accumulator grows a waveform during live recording. Each Add reduces one
// capture window to len(window)/factor columns and appends them, so the cost
// of a tick does not depend on how long the recording already is.
//
// The accumulated waveform has no upper bound.
type Accumulator struct {
	factor int
	pairs  Waveform
	frozen bool
}

// NewAccumulator creates an accumulator. A factor <= 0 selects ReductionFactor.
func NewAccumulator(factor int) *Accumulator {
	if factor <= 0 {
		factor = ReductionFactor
	}

	return &Accumulator{factor: factor}
}

// Add appends the reduction of window and returns the newly added columns.
// Windows shorter than the reduction factor add nothing.
func (a *Accumulator) Add(window []float32) (Waveform, error) {
	if a.frozen {
		return nil, ErrFrozen
	}

	added := Reduce(window, len(window)/a.factor)
	a.pairs = append(a.pairs, added...)

	return added, nil
}

// Waveform returns the columns accumulated so far.
// The returned slice must not be modified.
func (a *Accumulator) Waveform() Waveform {
	return a.pairs
}

// Len returns the number of accumulated columns.
func (a *Accumulator) Len() int {
	return len(a.pairs)
}

// Freeze stops accumulation and returns the final waveform.
func (a *Accumulator) Freeze() Waveform {
	a.frozen = true

	return a.pairs
}

// Frozen reports whether Freeze was called since the last Reset.
func (a *Accumulator) Frozen() bool {
	return a.frozen
}

// Reset discards all columns and allows accumulation again.
func (a *Accumulator) Reset() {
	a.pairs = nil
	a.frozen = false
}
