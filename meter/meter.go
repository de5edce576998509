// SPDX-License-Identifier: EPL-2.0

package meter

import (
	"math"

	"github.com/viterin/vek/vek32"
)

const (
	// SilenceFloor is the level in dB below which a decaying meter goes idle.
	SilenceFloor = -60.0

	// Range is the width in dB of the window mapped onto [0,1].
	Range = 30.0

	// DefaultStep is the decay in dB applied per tick.
	DefaultStep = 1.0
)

// floorMean is the magnitude at SilenceFloor. An active meter in silence
// holds its carried magnitude here.
var floorMean = math.Pow(10, SilenceFloor/10)

// State of a Meter.
type State int

const (
	// Idle meters have decayed below the silence floor or were never started.
	Idle State = iota
	// Active meters receive live samples.
	Active
	// Decaying meters fall towards silence after their session stopped.
	Decaying
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Decaying:
		return "decaying"
	default:
		return "unknown"
	}
}

// Reading is the output of one tick.
type Reading struct {
	// Mean is the magnitude estimate carried to the next tick.
	Mean float64
	// DB is a decibel-like value derived from Mean.
	DB float64
	// Normalized maps [-30,0] dB onto [0,1]. It is not clamped.
	Normalized float64
	// Idle is set once the level fell below SilenceFloor.
	Idle bool
}

// Meter is a loudness estimator with instant attack and stepped decay.
// It is not safe for concurrent use.
type Meter struct {
	step     float64
	state    State
	lastMean float64
	tmp      []float32
}

// New creates an idle meter that decays by step dB per tick.
// A step <= 0 selects DefaultStep.
func New(step float64) *Meter {
	if step <= 0 {
		step = DefaultStep
	}

	return &Meter{step: step}
}

// State returns the current state.
func (m *Meter) State() State { return m.state }

// LastMean returns the magnitude estimate carried between ticks.
func (m *Meter) LastMean() float64 { return m.lastMean }

// Start marks the meter active. The carried magnitude is kept, so a restart
// during a fade continues from the current level.
func (m *Meter) Start() {
	m.state = Active
}

// Stop lets the meter fade out. An idle meter stays idle.
func (m *Meter) Stop() {
	if m.state == Active {
		m.state = Decaying
	}
}

// Reset forces the meter idle with a zero magnitude.
func (m *Meter) Reset() {
	m.state = Idle
	m.lastMean = 0
}

// Magnitude returns mean(sqrt(|sample|)) over window, or 0 for an empty window.
func (m *Meter) Magnitude(window []float32) float64 {
	if len(window) == 0 {
		return 0
	}

	if cap(m.tmp) < len(window) {
		m.tmp = make([]float32, len(window))
	}
	tmp := m.tmp[:len(window)]

	vek32.Abs_Into(tmp, window)
	vek32.Sqrt_Inplace(tmp)

	return float64(vek32.Mean(tmp))
}

// Tick advances the meter by one frame. window is only read while Active.
func (m *Meter) Tick(window []float32) Reading {
	switch m.state {
	case Active:
		mean := m.Magnitude(window)
		if mean > m.lastMean {
			m.lastMean = mean

			return m.reading(toDB(mean))
		}

		db := m.decay()
		if db < SilenceFloor {
			m.lastMean = floorMean
		}

		return m.reading(db)
	case Decaying:
		db := m.decay()
		if db < SilenceFloor {
			m.Reset()
		}

		return m.reading(db)
	default:
		return m.reading(SilenceFloor - m.step)
	}
}

// decay lowers the carried level by one step and stores it back as a
// magnitude so the next comparison uses the decayed value.
func (m *Meter) decay() float64 {
	db := toDB(m.lastMean) - m.step
	m.lastMean = math.Pow(10, db/10)

	return db
}

func (m *Meter) reading(db float64) Reading {
	return Reading{
		Mean:       m.lastMean,
		DB:         db,
		Normalized: Normalize(db),
		Idle:       db < SilenceFloor,
	}
}

// toDB converts a magnitude to the meter's decibel-like scale. Zero and
// negative magnitudes map to SilenceFloor instead of -Inf.
func toDB(mean float64) float64 {
	if mean <= 0 {
		return SilenceFloor
	}

	return 10 * math.Log10(mean)
}

// Normalize maps db from [-Range,0] onto [0,1] without clamping.
func Normalize(db float64) float64 {
	return (db + Range) / Range
}
