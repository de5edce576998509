// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	// ErrCutoffAboveNyquist indicates a frequency that the sample rate cannot represent.
	ErrCutoffAboveNyquist = errors.New("frequency must be below the Nyquist frequency")

	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
