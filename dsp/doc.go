// SPDX-License-Identifier: EPL-2.0

// Package dsp synthesizes the subliminal channel of a recording.
//
// The microphone signal is amplitude modulated by a high frequency
// tremolo, which moves its energy next to the carrier, and then high-passed
// so that only the band above the audible range of most listeners remains:
//
//	hidden, err := dsp.Subliminal(mic, 44100)
//
// The building blocks are usable on their own: Tremolo, Biquad and Cascade
// process float32 blocks in place and keep their state between calls.
package dsp
