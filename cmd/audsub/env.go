// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ik5/audsub"
	"github.com/ik5/audsub/audio"
	"github.com/ik5/audsub/device"
	"github.com/ik5/audsub/meter"
)

// env is what every subcommand shares.
type env struct {
	opts device.Options
	reg  *audio.Registry
	out  io.Writer
}

func newEnv(opts device.Options) *env {
	return &env{opts: opts, reg: audsub.NewRegistry(), out: os.Stdout}
}

var (
	barLow  = color.New(color.FgGreen)
	barMid  = color.New(color.FgYellow)
	barHigh = color.New(color.FgRed)
	dim     = color.New(color.Faint)
)

const barCells = 40

// meterBar draws a reading as a fixed width bar. The meter does not clamp,
// so the bar does.
func meterBar(r meter.Reading) string {
	level := min(max(r.Normalized, 0), 1)
	if r.Idle {
		level = 0
	}
	filled := int(level*barCells + 0.5)

	var b strings.Builder
	for i := range filled {
		switch {
		case i >= barCells*9/10:
			b.WriteString(barHigh.Sprint("█"))
		case i >= barCells*7/10:
			b.WriteString(barMid.Sprint("█"))
		default:
			b.WriteString(barLow.Sprint("█"))
		}
	}
	b.WriteString(dim.Sprint(strings.Repeat("·", barCells-filled)))

	return b.String()
}

func (e *env) status(format string, args ...any) {
	fmt.Fprintf(e.out, "\r"+format+"\033[K", args...)
}
