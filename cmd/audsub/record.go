// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/ik5/audsub"
	"github.com/ik5/audsub/device"
	"github.com/ik5/audsub/internal/logger"
)

func runRecord(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	duration := fs.Duration("duration", 0, "stop after this long, 0 records until interrupted")
	from := fs.String("from", "", "record from an audio file instead of the microphone")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}

	rec := device.NewRecorder(e.opts)

	var (
		clip *device.Clip
		err  error
	)
	if *from != "" {
		clip, err = recordFile(e, rec, *from)
	} else {
		clip, err = recordMicrophone(ctx, e, rec, *duration)
	}
	if err != nil {
		return err
	}

	return saveClip(clip, fs.Arg(0), fs.Arg(1))
}

func recordFile(e *env, rec *device.Recorder, path string) (*device.Clip, error) {
	src, err := audsub.Open(e.reg, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return audsub.Capture(src, rec, func(f device.Frame) {
		e.status("%s %v", meterBar(f.Level), rec.RecordingTime().Round(time.Millisecond))
	})
}

// decodeF32 converts a malgo f32 capture buffer.
func decodeF32(dst []float32, in []byte) []float32 {
	dst = dst[:0]
	for i := 0; i+4 <= len(in); i += 4 {
		dst = append(dst, math.Float32frombits(binary.LittleEndian.Uint32(in[i:])))
	}
	return dst
}

func recordMicrophone(ctx context.Context, e *env, rec *device.Recorder, duration time.Duration) (*device.Clip, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = 1
	cfg.SampleRate = uint32(rec.SampleRate())
	cfg.Alsa.NoMMap = 1

	var samples []float32
	dev, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			samples = decodeF32(samples, input)
			rec.Tap().Write(samples)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initializing capture device: %w", err)
	}
	defer dev.Uninit()

	if err := rec.Start(); err != nil {
		return nil, err
	}
	if err := dev.Start(); err != nil {
		return nil, fmt.Errorf("starting capture device: %w", err)
	}
	logger.Info("Recording, press Ctrl+C to stop")

	var end <-chan time.Time
	if duration > 0 {
		end = time.After(duration)
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-end:
			break loop
		case <-ticker.C:
			f := rec.Tick()
			e.status("%s %v", meterBar(f.Level), rec.RecordingTime().Round(time.Second/10))
		}
	}

	if err := dev.Stop(); err != nil {
		logger.Error("stopping capture device", err)
	}
	clip, err := rec.Stop()
	fmt.Fprintln(e.out)

	return clip, err
}

func saveClip(clip *device.Clip, wavPath, waveformPath string) error {
	if err := os.WriteFile(wavPath, clip.WAV, 0o644); err != nil {
		return fmt.Errorf("writing clip: %w", err)
	}

	data, err := json.Marshal(clip.Waveform)
	if err != nil {
		return fmt.Errorf("encoding waveform: %w", err)
	}
	if err := os.WriteFile(waveformPath, data, 0o644); err != nil {
		return fmt.Errorf("writing waveform: %w", err)
	}

	logger.Infof("Wrote %s (%v) and %s", wavPath, clip.Duration.Round(time.Millisecond), waveformPath)

	return nil
}
