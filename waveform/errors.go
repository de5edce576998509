// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var (
	// ErrChannelCount indicates a persisted waveform without exactly two channels.
	ErrChannelCount = errors.New("persisted waveform must have exactly two channels")

	// ErrOddLength indicates a flat channel that is not made of (pos, neg) pairs.
	ErrOddLength = errors.New("persisted channel length must be even")

	// ErrFrozen indicates an append to an accumulator that was already frozen.
	ErrFrozen = errors.New("accumulator is frozen")
)
