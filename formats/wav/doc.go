// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// Decoding uses github.com/go-audio/wav and accepts integer PCM at 16, 24
// or 32 bits with any channel count and sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Recorded clips are written as 16-bit PCM:
//
//	err := wav.WriteBuffer(w, clipBuffer)
//
// WriteWAV16 emits a fixed 44-byte header followed by the samples, so it
// works on any io.Writer.
package wav
