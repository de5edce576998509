// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/graph"
	"github.com/ik5/audsub/internal/logger"
	"github.com/ik5/audsub/meter"
	"github.com/ik5/audsub/waveform"
)

// playerGraph is the playback graph:
//
//	main -> router -> gain -> analyser -+
//	                                    +-> mixer
//	alt  -> gain -----------------------+
type playerGraph struct {
	main     *graph.BufferSource
	router   *graph.Router
	mainGain *graph.Gain
	analyser *graph.Analyser

	alt     *graph.BufferSource
	altGain *graph.Gain

	out *graph.Mixer
}

func newPlayerGraph(opts Options) (*playerGraph, error) {
	g := &playerGraph{
		main: graph.NewBufferSource(audio.NewBuffer(opts.SampleRate, nil, nil), true),
		alt:  graph.NewBufferSource(audio.NewBuffer(opts.SampleRate, nil), true),
	}

	var err error
	if g.router, err = graph.NewRouter(g.main); err != nil {
		return nil, fmt.Errorf("building router: %w", err)
	}
	g.mainGain = graph.NewGain(g.router)
	g.analyser = graph.NewAnalyser(g.mainGain, opts.WindowSize)
	g.altGain = graph.NewGain(g.alt)

	if g.out, err = graph.NewMixer(g.analyser, g.altGain); err != nil {
		return nil, fmt.Errorf("building output: %w", err)
	}

	logger.Debugf("player: graph ready at %d Hz", opts.SampleRate)

	return g, nil
}

// Player plays a decoded clip and shows its stored waveform. The main clip
// is stereo: channel 0 is audible by default and SetSubliminal switches the
// output to channel 1. A second looping background track, see Alt, is mixed
// in independently.
type Player struct {
	graph *Lifecycle[*playerGraph]

	mu        sync.Mutex
	opts      Options
	meter     *meter.Meter
	persisted waveform.Persisted
	left      waveform.Waveform
	right     waveform.Waveform
	loaded    bool
	window    []float32
}

func NewPlayer(opts Options) *Player {
	opts = opts.Normalize()
	p := &Player{
		opts:  opts,
		meter: meter.New(opts.MeterStepDB),
	}
	p.graph = NewLifecycle(func() (*playerGraph, error) {
		return newPlayerGraph(opts)
	})

	return p
}

// Options returns the normalized options.
func (p *Player) Options() Options {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.opts
}

// Load stops playback, rewinds and replaces the clip and its stored waveform.
// src is read to the end at the graph sample rate; it is not closed.
func (p *Player) Load(src audio.Source, persisted waveform.Persisted) error {
	if err := persisted.Validate(); err != nil {
		return fmt.Errorf("stored waveform: %w", err)
	}

	g, err := p.graph.Ready()
	if err != nil {
		return err
	}
	p.Stop()

	buf, err := readAt(src, p.opts.SampleRate)
	if err != nil {
		return fmt.Errorf("reading clip: %w", err)
	}
	g.main.SetBuffer(buf)

	p.mu.Lock()
	p.persisted = persisted
	p.loaded = true
	p.reduce()
	p.mu.Unlock()

	logger.Debugf("player: loaded %v, %d stored columns", buf.Duration(), persisted.Columns())

	return nil
}

func readAt(src audio.Source, rate int) (*audio.Buffer, error) {
	buf, err := audio.ReadAll(audio.NewResampler(src, rate))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return buf, nil
}

// reduce rebuilds the display waveform; callers hold p.mu. Each flat stored
// channel is reduced again to the display columns, which undoes the doubled
// encoding when both column counts match.
func (p *Player) reduce() {
	columns := p.opts.Columns()
	p.left = waveform.Reduce(p.persisted[0], columns)
	p.right = waveform.Reduce(p.persisted[1], columns)
}

// Resize changes the render width and recomputes the display waveform.
func (p *Player) Resize(width int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.opts.Width = width
	p.opts = p.opts.Normalize()
	p.reduce()
}

func (p *Player) Waveform() (left, right waveform.Waveform) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.left, p.right
}

// Loaded reports whether a clip was loaded.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loaded
}

func (p *Player) Play() error {
	g, err := p.graph.Ready()
	if err != nil {
		return err
	}
	if !p.Loaded() {
		return ErrNotLoaded
	}

	g.main.Start()

	p.mu.Lock()
	p.meter.Start()
	p.mu.Unlock()

	return nil
}

// Stop pauses at the current position and lets the meter fade out.
func (p *Player) Stop() {
	if g, ok := p.graph.Peek(); ok {
		g.main.Stop()
	}

	p.mu.Lock()
	p.meter.Stop()
	p.mu.Unlock()
}

// PlayStop toggles playback.
func (p *Player) PlayStop() error {
	if p.IsPlaying() {
		p.Stop()
		return nil
	}
	return p.Play()
}

func (p *Player) IsPlaying() bool {
	g, ok := p.graph.Peek()
	return ok && g.main.Playing()
}

// Duration of the loaded clip.
func (p *Player) Duration() time.Duration {
	g, ok := p.graph.Peek()
	if !ok {
		return 0
	}
	return g.main.Duration()
}

// Seek moves playback to pixel x of the render width.
func (p *Player) Seek(x int) error {
	g, err := p.graph.Ready()
	if err != nil {
		return err
	}

	width := p.Options().Width
	x = max(0, min(x, width))
	g.main.Seek(time.Duration(float64(g.main.Duration()) * float64(x) / float64(width)))

	return nil
}

// Playhead returns the play position in pixels of the render width.
func (p *Player) Playhead() int {
	g, ok := p.graph.Peek()

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playhead(g, ok)
}

// SetVolume ramps the main clip to level.
func (p *Player) SetVolume(level float64) error {
	g, err := p.graph.Ready()
	if err != nil {
		return err
	}

	g.mainGain.SetLevel(level, p.Options().VolumeRamp)
	return nil
}

// Volume is the level the main clip is ramping to, 1 before any change.
func (p *Player) Volume() float64 {
	g, ok := p.graph.Peek()
	if !ok {
		return 1
	}
	return g.mainGain.Target()
}

// SetSubliminal selects the subliminal channel of the clip.
func (p *Player) SetSubliminal(enabled bool) error {
	g, err := p.graph.Ready()
	if err != nil {
		return err
	}

	g.router.SetSubliminal(enabled)
	return nil
}

func (p *Player) Subliminal() bool {
	g, ok := p.graph.Peek()
	return ok && g.router.Subliminal()
}

// Connections reports which splitter channel feeds the output.
// Before the graph exists the main channel is reported.
func (p *Player) Connections() [graph.Outputs]bool {
	g, ok := p.graph.Peek()
	if !ok {
		return [graph.Outputs]bool{true, false}
	}
	return g.router.Connections()
}

// Output is the mono graph output to be drained by an output device.
func (p *Player) Output() (audio.Source, error) {
	g, err := p.graph.Ready()
	if err != nil {
		return nil, err
	}
	return g.out, nil
}

// Tick reads the analysis window of the main clip once and advances the meter.
func (p *Player) Tick() Frame {
	g, ok := p.graph.Peek()

	p.mu.Lock()
	defer p.mu.Unlock()

	if ok {
		p.window = g.analyser.Snapshot(p.window)
	}

	level := p.meter.Tick(p.window)
	playing := ok && g.main.Playing()
	if !playing && p.meter.State() == meter.Active {
		// the clip ended on its own
		p.meter.Stop()
	}

	return Frame{
		Playhead: p.playhead(g, ok),
		Level:    level,
		Done:     !playing && p.meter.State() == meter.Idle,
	}
}

func (p *Player) playhead(g *playerGraph, ok bool) int {
	if !ok {
		return 0
	}
	d := g.main.Duration()
	if d <= 0 {
		return 0
	}
	return int(float64(g.main.Position()) / float64(d) * float64(p.opts.Width))
}

// Alt returns the background track controls.
func (p *Player) Alt() *Alt {
	return &Alt{p: p}
}
