// SPDX-License-Identifier: EPL-2.0

// Command audsub stores waveforms, plays clips with their subliminal channel
// and records new clips.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/ik5/audsub/internal/config"
	"github.com/ik5/audsub/internal/logger"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"waveform", "waveform <in> [-o out.json]", runWaveform},
	{"play", "play [-subliminal] [-alt file] [-volume v] [-alt-volume v] <in> <waveform.json>", runPlay},
	{"record", "record [-duration d] [-from file] <out.wav> <out.json>", runRecord},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(out, "  %s\n", c.usage)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "YAML options file")
	logLevel := flag.String("log-level", "info", "Set log level (debug|info|warn|error)")
	logFilename := flag.String("log-filename", "", "Log to file instead of stderr")
	flag.Parse()

	logger.SetLevel(*logLevel)
	if *logFilename != "" {
		if err := logger.SetOutputFile(*logFilename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set log file: %v\n", err)
			os.Exit(1)
		}
		defer logger.CloseLogFile()
	}

	if err := run(*configPath, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logger.Error("audsub failed", err)
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	opts, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := newEnv(opts)
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, e, args[1:])
		}
	}

	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}
