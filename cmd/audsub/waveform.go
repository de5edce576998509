// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ik5/audsub"
	"github.com/ik5/audsub/internal/logger"
)

func runWaveform(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("waveform", flag.ContinueOnError)
	output := fs.String("o", "", "write the JSON here instead of stdout")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	src, err := audsub.Open(e.reg, fs.Arg(0))
	if err != nil {
		return err
	}
	defer src.Close()

	stored, err := audsub.PersistedWaveform(src)
	if err != nil {
		return err
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encoding waveform: %w", err)
	}

	if *output == "" {
		_, err = fmt.Fprintln(e.out, string(data))
		return err
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("writing waveform: %w", err)
	}
	logger.Infof("Wrote %s (%d columns)", *output, stored.Columns())

	return nil
}
