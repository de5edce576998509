// SPDX-License-Identifier: EPL-2.0

// Package device implements the two waveform widgets: a Player for stored
// clips and a Recorder for live capture. Both are driven by an external tick
// loop through the WaveformSource interface and stop being ticked once a
// Frame reports Done.
//
// The player's audio graph is built on first use, see Lifecycle.
package device
