// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files with github.com/go-audio/aiff.
//
//	src, err := aiff.Decoder{}.Decode(file)
//
// Readers that cannot seek are buffered in memory first.
package aiff
