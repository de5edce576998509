// SPDX-License-Identifier: EPL-2.0

package meter

import (
	"math"
	"testing"
)

func constWindow(n int, v float32) []float32 {
	w := make([]float32, n)
	for i := range w {
		w[i] = v
	}
	return w
}

func TestMagnitude(t *testing.T) {
	t.Parallel()

	m := New(0)

	tests := []struct {
		name   string
		window []float32
		want   float64
	}{
		{name: "empty", window: nil, want: 0},
		{name: "silence", window: constWindow(16, 0), want: 0},
		{name: "full scale", window: constWindow(16, 1), want: 1},
		{name: "sign ignored", window: []float32{0.25, -0.25, 0.25, -0.25}, want: 0.5},
		{name: "mixed", window: []float32{1, 0}, want: 0.5},
	}

	for _, tt := range tests {
		if got := m.Magnitude(tt.window); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s: Magnitude() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTick_InstantAttack(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Start()

	r := m.Tick(constWindow(64, 1))
	if r.DB != 0 || r.Normalized != 1 {
		t.Errorf("full scale tick = %+v, want DB 0, Normalized 1", r)
	}

	// sqrt(0.01) = 0.1 -> -10 dB
	m.Reset()
	m.Start()
	r = m.Tick(constWindow(64, 0.01))
	if math.Abs(r.DB+10) > 1e-4 {
		t.Errorf("DB = %v, want -10", r.DB)
	}
	if math.Abs(r.Normalized-2.0/3.0) > 1e-4 {
		t.Errorf("Normalized = %v, want 0.667", r.Normalized)
	}

	r = m.Tick(constWindow(64, 1))
	if r.DB != 0 {
		t.Errorf("onset after quiet tick DB = %v, want 0", r.DB)
	}
}

func TestTick_SteppedDecayWhileActive(t *testing.T) {
	t.Parallel()

	m := New(1)
	m.Start()
	m.Tick(constWindow(64, 1))

	r := m.Tick(constWindow(64, 0.0001))
	if math.Abs(r.DB+1) > 1e-9 {
		t.Errorf("DB after quieter window = %v, want -1", r.DB)
	}
	if want := math.Pow(10, -0.1); math.Abs(m.LastMean()-want) > 1e-12 {
		t.Errorf("LastMean() = %v, want %v", m.LastMean(), want)
	}
	if m.State() != Active {
		t.Errorf("State() = %v, want active", m.State())
	}
}

func TestTick_SilenceReachesIdle(t *testing.T) {
	t.Parallel()

	m := New(7)
	m.Start()
	m.Tick(constWindow(128, 1))

	silence := constWindow(128, 0)
	prev := math.Inf(1)
	ticks := 0
	for ; ticks < 100; ticks++ {
		r := m.Tick(silence)
		if math.IsNaN(r.Normalized) || math.IsInf(r.Normalized, 0) {
			t.Fatalf("tick %d: non-finite reading %+v", ticks, r)
		}
		if r.Normalized > prev {
			t.Fatalf("tick %d: Normalized rose from %v to %v", ticks, prev, r.Normalized)
		}
		prev = r.Normalized
		if r.Idle {
			break
		}
	}

	// -7 dB per tick from 0 dB: -63 on the ninth tick
	if ticks != 8 {
		t.Errorf("reached idle after %d ticks, want 8", ticks)
	}
}

func TestTick_ActiveSilenceHoldsAtFloor(t *testing.T) {
	t.Parallel()

	m := New(1)
	m.Start()
	m.Tick(constWindow(64, 0.5))

	silence := constWindow(64, 0)
	var r Reading
	for range 5000 {
		r = m.Tick(silence)
	}

	if want := math.Pow(10, SilenceFloor/10); math.Abs(m.LastMean()-want) > 1e-15 {
		t.Errorf("LastMean() = %v, want %v", m.LastMean(), want)
	}
	if math.Abs(r.DB-(SilenceFloor-1)) > 1e-9 || !r.Idle {
		t.Errorf("reading = %+v, want DB %v and idle", r, SilenceFloor-1)
	}
	if m.State() != Active {
		t.Errorf("State() = %v, want active", m.State())
	}

	// a louder window still attacks from the floor
	if r := m.Tick(constWindow(64, 0.25)); math.Abs(r.DB-10*math.Log10(0.5)) > 1e-9 {
		t.Errorf("DB after attack = %v", r.DB)
	}
}

func TestTick_ZeroMeanNeverNonFinite(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Start()

	r := m.Tick(constWindow(32, 0))
	if math.IsInf(r.DB, 0) || math.IsNaN(r.DB) {
		t.Fatalf("DB = %v, want finite", r.DB)
	}
	if r.DB != SilenceFloor-DefaultStep {
		t.Errorf("DB = %v, want %v", r.DB, SilenceFloor-DefaultStep)
	}
	if !r.Idle {
		t.Error("silent meter not reported idle")
	}
}

func TestStop_DecaysToIdle(t *testing.T) {
	t.Parallel()

	m := New(7)
	m.Start()
	m.Tick(constWindow(32, 1))
	m.Stop()

	if m.State() != Decaying {
		t.Fatalf("State() after Stop = %v, want decaying", m.State())
	}

	var r Reading
	ticks := 0
	for m.State() == Decaying && ticks < 100 {
		r = m.Tick(nil)
		ticks++
	}

	if m.State() != Idle || !r.Idle {
		t.Fatalf("State() = %v, reading %+v, want idle", m.State(), r)
	}
	if ticks != 9 {
		t.Errorf("decayed in %d ticks, want 9", ticks)
	}
	if m.LastMean() != 0 {
		t.Errorf("LastMean() after idle = %v, want 0", m.LastMean())
	}
}

func TestStop_IgnoresWindowWhileDecaying(t *testing.T) {
	t.Parallel()

	m := New(1)
	m.Start()
	m.Tick(constWindow(32, 0.01))
	m.Stop()

	r := m.Tick(constWindow(32, 1))
	if math.Abs(r.DB+11) > 1e-4 {
		t.Errorf("decaying tick DB = %v, want -11", r.DB)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	m := New(0)
	m.Start()
	m.Tick(constWindow(32, 1))
	m.Reset()

	if m.State() != Idle || m.LastMean() != 0 {
		t.Errorf("Reset() left state %v, mean %v", m.State(), m.LastMean())
	}

	m.Stop()
	if m.State() != Idle {
		t.Errorf("Stop() on idle meter moved to %v", m.State())
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db   float64
		want float64
	}{
		{db: 0, want: 1},
		{db: -30, want: 0},
		{db: -15, want: 0.5},
		{db: 3, want: 1.1},
		{db: -60, want: -1},
	}

	for _, tt := range tests {
		if got := Normalize(tt.db); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]string{Idle: "idle", Active: "active", Decaying: "decaying", State(9): "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
