// SPDX-License-Identifier: EPL-2.0

package device

import (
	"sync"
	"time"

	"github.com/ik5/audsub/internal/logger"
	"github.com/ik5/audsub/meter"
	"github.com/ik5/audsub/waveform"
)

// Recorder captures microphone samples through its Tap and grows a waveform
// while recording. Stopping produces a Clip.
type Recorder struct {
	tap *Tap

	mu         sync.Mutex
	opts       Options
	acc        *waveform.Accumulator
	meter      *meter.Meter
	recording  bool
	started    time.Time
	elapsed    time.Duration
	window     []float32
	onComplete func(Clip)

	now func() time.Time
}

func NewRecorder(opts Options) *Recorder {
	opts = opts.Normalize()

	return &Recorder{
		tap:    &Tap{},
		opts:   opts,
		acc:    waveform.NewAccumulator(opts.ReductionFactor),
		meter:  meter.New(opts.MeterStepDB),
		window: make([]float32, opts.WindowSize),
		now:    time.Now,
	}
}

// Tap is where the capture device writes mono samples at the configured
// sample rate.
func (r *Recorder) Tap() *Tap { return r.tap }

// SampleRate the tap expects.
func (r *Recorder) SampleRate() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.opts.SampleRate
}

// OnComplete registers fn to receive every finished clip.
func (r *Recorder) OnComplete(fn func(Clip)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onComplete = fn
}

// Start discards the previous take and begins recording.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}

	r.tap.Reset()
	r.acc.Reset()
	r.meter.Start()
	r.started = r.now()
	r.elapsed = 0
	r.recording = true

	logger.Debug("recorder: started")

	return nil
}

// Stop ends recording, freezes the waveform and returns the clip.
func (r *Recorder) Stop() (*Clip, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}

	r.recording = false
	r.elapsed = r.now().Sub(r.started)
	r.meter.Stop()
	r.acc.Freeze()
	rate, fn := r.opts.SampleRate, r.onComplete
	r.mu.Unlock()

	clip, err := NewClip(r.tap.Take(), rate)
	if err != nil {
		return nil, err
	}

	logger.Debugf("recorder: stopped after %v, clip of %v", r.elapsed, clip.Duration)

	if fn != nil {
		fn(*clip)
	}

	return clip, nil
}

// Record toggles recording. The clip is returned when it stops.
func (r *Recorder) Record() (*Clip, error) {
	if r.IsRecording() {
		return r.Stop()
	}
	return nil, r.Start()
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.recording
}

// RecordingTime is the time since Start, or the length of the last take.
func (r *Recorder) RecordingTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return r.now().Sub(r.started)
	}
	return r.elapsed
}

// Resize changes the render width. The live waveform grows by ticks, not
// by width, so only the options change.
func (r *Recorder) Resize(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.opts.Width = width
	r.opts = r.opts.Normalize()
}

// Waveform returns the accumulated waveform on both channels; capture is mono.
func (r *Recorder) Waveform() (left, right waveform.Waveform) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.acc.Waveform()
	return w, w
}

// Tick takes one snapshot of the tap and feeds it to both the waveform and
// the meter.
func (r *Recorder) Tick() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := r.tap.Window(r.window)

	var appended waveform.Waveform
	if r.recording {
		// the accumulator is only frozen while not recording
		appended, _ = r.acc.Add(window)
	}
	level := r.meter.Tick(window)

	return Frame{
		Appended: appended,
		Level:    level,
		Done:     !r.recording && r.meter.State() == meter.Idle,
	}
}

// Options returns the normalized options.
func (r *Recorder) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.opts
}
