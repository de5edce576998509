// SPDX-License-Identifier: EPL-2.0

// Package meter estimates perceived loudness for a level bar.
//
// A Meter is ticked once per animation frame with the current analysis
// window. The magnitude of a window is the mean of sqrt(|sample|), a cheap
// perceptual shaping rather than RMS. Rising loudness is shown at once;
// falling loudness drops by a fixed number of decibels per tick.
//
//	m := meter.New(meter.DefaultStep)
//	m.Start()
//	for range ticker.C {
//	    r := m.Tick(window)
//	    drawBar(r.Normalized) // clamp to [0,1] when drawing
//	    if r.Idle {
//	        break
//	    }
//	}
//
// The decay step is applied per tick and is not scaled by elapsed time, so
// the fall speed follows the tick rate.
package meter
