// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"

	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/internal/logger"
)

// Alt controls the player's looping background track. It has its own gain
// and is not affected by subliminal routing.
type Alt struct {
	p *Player
}

// Load stops the track and replaces it with src downmixed to mono.
func (a *Alt) Load(src audio.Source) error {
	g, err := a.p.graph.Ready()
	if err != nil {
		return err
	}

	buf, err := readAt(audio.NewMonoMixer(src), a.p.Options().SampleRate)
	if err != nil {
		return fmt.Errorf("reading background track: %w", err)
	}
	g.alt.SetBuffer(buf)

	logger.Debugf("player: background track loaded, %v", buf.Duration())

	return nil
}

func (a *Alt) Play() error {
	g, err := a.p.graph.Ready()
	if err != nil {
		return err
	}
	if g.alt.Duration() == 0 {
		return ErrNotLoaded
	}

	g.alt.Start()
	return nil
}

func (a *Alt) Stop() {
	if g, ok := a.p.graph.Peek(); ok {
		g.alt.Stop()
	}
}

func (a *Alt) PlayStop() error {
	if a.IsPlaying() {
		a.Stop()
		return nil
	}
	return a.Play()
}

func (a *Alt) IsPlaying() bool {
	g, ok := a.p.graph.Peek()
	return ok && g.alt.Playing()
}

// SetVolume ramps the background track to level.
func (a *Alt) SetVolume(level float64) error {
	g, err := a.p.graph.Ready()
	if err != nil {
		return err
	}

	g.altGain.SetLevel(level, a.p.Options().VolumeRamp)
	return nil
}
