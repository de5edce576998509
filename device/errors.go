// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrNotLoaded        = errors.New("no audio loaded")
	ErrNotRecording     = errors.New("not recording")
	ErrAlreadyRecording = errors.New("already recording")
	ErrUnknownType      = errors.New("unknown waveform type")
	ErrInvalidOptions   = errors.New("invalid options")
)
