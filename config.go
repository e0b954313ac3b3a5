package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// options of the emulator, set on the command line.
type options struct {
	ROM        string
	Speed      int64
	Scale      int
	Edges      chip8.Edges
	Seed       int64
	Headless   bool
	Steps      int
	Screenshot string
	Debug      bool
	Trace      bool
	Quiet      bool
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error, if any, followed by the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Fprintf(os.Stderr, "%s\n\n", e.msg)
	}
	fmt.Fprintf(os.Stderr, "usage: chip-8 [options] [ROM file]\n\n")
	e.flags.SetOutput(os.Stderr)
	e.flags.PrintDefaults()
	fmt.Fprintln(os.Stderr)
}

// parseFlags parses the command line arguments into options.
func parseFlags(args []string) (options, error) {
	var opts options
	var edges string

	flags := flag.NewFlagSet("chip-8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.Int64Var(&opts.Speed, "speed", chip8.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "size of a CHIP-8 pixel in the window and screenshots")
	flags.StringVar(&edges, "edges", "wrap", "sprites drawn off screen: wrap, clip or fault")
	flags.Int64Var(&opts.Seed, "seed", 0, "random number seed, 0 seeds from the clock")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the display")
	flags.IntVar(&opts.Steps, "steps", 10000, "number of instructions to run in headless mode")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of the PNG file screenshots are written to")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{flags: flags, msg: "only one ROM file can be loaded"}
	}

	if opts.Headless && opts.ROM == "" {
		return opts, &UsageError{flags: flags, msg: "headless mode needs a ROM file"}
	}
	if opts.Speed <= 0 {
		return opts, fmt.Errorf("invalid speed %d", opts.Speed)
	}
	if opts.Scale < 1 {
		return opts, fmt.Errorf("invalid scale %d", opts.Scale)
	}

	var err error
	if opts.Edges, err = chip8.ParseEdges(edges); err != nil {
		return opts, err
	}

	return opts, nil
}

// machineConfig returns the virtual machine settings for the options.
func (opts options) machineConfig(logger *log.Logger) chip8.Config {
	cfg := chip8.Config{
		Edges:      opts.Edges,
		Seed:       opts.Seed,
		Speed:      opts.Speed,
		TraceDepth: 32,
	}

	if opts.Trace {
		cfg.Logger = logger
	}

	return cfg
}

// newLogger creates a logger with appropriate settings.
func newLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
