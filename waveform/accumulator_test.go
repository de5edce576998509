// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"errors"
	"testing"
)

func TestAccumulator_Grows(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(0)
	window := make([]float32, 1024)
	for i := range window {
		if i%2 == 0 {
			window[i] = 0.5
		} else {
			window[i] = -0.5
		}
	}

	for tick := 1; tick <= 5; tick++ {
		added, err := acc.Add(window)
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if len(added) != 1 {
			t.Fatalf("tick %d: Add() appended %d columns, want 1", tick, len(added))
		}
		if acc.Len() != tick {
			t.Errorf("tick %d: Len() = %d", tick, acc.Len())
		}
	}

	for i, p := range acc.Waveform() {
		if p.Neg != -0.25 || p.Pos != 0.25 {
			t.Errorf("column %d = %+v, want {-0.25 0.25}", i, p)
		}
	}
}

func TestAccumulator_ShortWindow(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(100)
	added, err := acc.Add(make([]float32, 99))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(added) != 0 || acc.Len() != 0 {
		t.Errorf("short window added %d columns", acc.Len())
	}

	added, _ = acc.Add(make([]float32, 450))
	if len(added) != 4 {
		t.Errorf("Add(450 samples) appended %d columns, want 4", len(added))
	}
}

func TestAccumulator_FreezeAndReset(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(10)
	if _, err := acc.Add(make([]float32, 20)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	final := acc.Freeze()
	if len(final) != 2 || !acc.Frozen() {
		t.Fatalf("Freeze() = %d columns, frozen = %v", len(final), acc.Frozen())
	}

	if _, err := acc.Add(make([]float32, 20)); !errors.Is(err, ErrFrozen) {
		t.Errorf("Add() after Freeze error = %v, want ErrFrozen", err)
	}
	if acc.Len() != 2 {
		t.Errorf("Len() after rejected Add = %d, want 2", acc.Len())
	}

	acc.Reset()
	if acc.Frozen() || acc.Len() != 0 {
		t.Errorf("Reset() left frozen = %v, len = %d", acc.Frozen(), acc.Len())
	}
}
