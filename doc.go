// SPDX-License-Identifier: EPL-2.0

// Package audsub turns audio files into compact stored waveforms and records
// clips carrying a hidden subliminal channel.
//
// # Stored waveforms
//
// A stored waveform is a JSON array of two flat arrays, one per channel, each
// holding (2·positive average, 2·negative average) per column:
//
//	reg := audsub.NewRegistry()
//	src, _ := audsub.Open(reg, "clip.wav")
//	defer src.Close()
//	stored, _ := audsub.PersistedWaveform(src)
//	data, _ := json.Marshal(stored)
//
// # Playback and recording
//
// The device package holds the Player and Recorder widgets, the graph package
// the playback graph they drive, and the meter and waveform packages the
// per tick visuals. Capture runs a Recorder over an existing source:
//
//	rec := device.NewRecorder(device.DefaultOptions())
//	clip, _ := audsub.Capture(src, rec, nil)
//	os.WriteFile("clip.wav", clip.WAV, 0o644)
//
// # Formats
//
// NewRegistry registers the decoders of the formats subpackages:
//   - WAV (PCM 16, 24 and 32 bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
package audsub
