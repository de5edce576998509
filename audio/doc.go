// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample pipeline primitives shared by the
// player, the recorder and the format decoders.
//
// # Source Interface
//
// Source is a pull interface over interleaved float32 samples in [-1,1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders, resamplers, mixers and the playback graph nodes all implement
// it, so they can be chained.
//
// # Buffers
//
// Waveform reduction needs the whole signal of a channel at once. ReadAll
// drains a Source into a planar Buffer:
//
//	buf, err := audio.ReadAll(src)
//	left := buf.Channel(0)
//
// # Resampling and Mixing
//
// Resampler converts the sample rate with cubic interpolation; MonoMixer
// averages channels:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 44100))
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode("wav", file)
//
// # Error Handling
//
// ReadSamples returns io.EOF once no more data is available. Other errors
// come from the underlying decoder.
package audio
