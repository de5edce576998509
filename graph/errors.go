// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	ErrChannelCount       = errors.New("unsupported channel count")
	ErrSampleRateMismatch = errors.New("mixer inputs must share a sample rate")
	ErrNoInputs           = errors.New("mixer needs at least one input")
)
