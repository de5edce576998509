// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audsub"
	"github.com/ik5/audsub/device"
	"github.com/ik5/audsub/graph"
	"github.com/ik5/audsub/internal/logger"
	"github.com/ik5/audsub/waveform"
)

const tickInterval = time.Second / 30

func runPlay(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	subliminal := fs.Bool("subliminal", false, "play the subliminal channel")
	altPath := fs.String("alt", "", "looping background track")
	volume := fs.Float64("volume", 1, "clip volume")
	altVolume := fs.Float64("alt-volume", 1, "background track volume")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}

	p, err := loadPlayer(e, fs.Arg(0), fs.Arg(1), *altPath)
	if err != nil {
		return err
	}
	if err := p.SetSubliminal(*subliminal); err != nil {
		return err
	}
	if err := p.SetVolume(*volume); err != nil {
		return err
	}
	if err := p.Alt().SetVolume(*altVolume); err != nil {
		return err
	}

	out, err := p.Output()
	if err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   out.SampleRate(),
		ChannelCount: out.Channels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("opening output device: %w", err)
	}
	<-ready

	speaker := otoCtx.NewPlayer(graph.NewPCMReader(out))
	defer speaker.Close()
	speaker.Play()

	if err := p.Play(); err != nil {
		return err
	}
	if *altPath != "" {
		if err := p.Alt().Play(); err != nil {
			return err
		}
	}
	logger.Debugf("playing %v, subliminal %v", p.Duration(), p.Subliminal())

	return tickPlayer(ctx, e, p, time.After(p.Duration()))
}

func loadPlayer(e *env, clipPath, waveformPath, altPath string) (*device.Player, error) {
	data, err := os.ReadFile(waveformPath)
	if err != nil {
		return nil, fmt.Errorf("reading waveform: %w", err)
	}
	stored, err := waveform.ParsePersisted(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", waveformPath, err)
	}

	src, err := audsub.Open(e.reg, clipPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	p := device.NewPlayer(e.opts)
	if err := p.Load(src, stored); err != nil {
		return nil, err
	}

	if altPath != "" {
		alt, err := audsub.Open(e.reg, altPath)
		if err != nil {
			return nil, err
		}
		defer alt.Close()

		if err := p.Alt().Load(alt); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// tickPlayer drives the meter until the clip ended or ctx is done, then
// keeps ticking through the fade out.
func tickPlayer(ctx context.Context, e *env, p *device.Player, end <-chan time.Time) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	width := p.Options().Width
	done := ctx.Done()
	for {
		select {
		case <-done:
			p.Stop()
			done, end = nil, nil
		case <-end:
			p.Stop()
			done, end = nil, nil
		case <-ticker.C:
		}

		f := p.Tick()
		e.status("%s %4d/%d px", meterBar(f.Level), f.Playhead, width)
		if f.Done {
			fmt.Fprintln(e.out)
			return nil
		}
	}
}
