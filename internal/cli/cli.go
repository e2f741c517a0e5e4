// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/db47h/pulsesim/internal/app"
)

// ExitError is an error that carries a process exit code.
//
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
//
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Values are taken, by increasing priority, from the defaults, the file given
// with -config, and explicitly set flags.
//
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pulsesim", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pulsesim - simulate a pulse network and predict when a terminal fires.

Usage:
  pulsesim [options] [FILE]

Arguments:
  FILE
    Module declarations, one per line.

Options:
`)
		flagSet.PrintDefaults()
	}

	def := app.DefaultConfig()
	configFlag := flagSet.String("config", "", "Path to an HCL run configuration file.")
	inputFlag := flagSet.String("input", "", "Path to the module declarations.")
	pressesFlag := flagSet.Int("presses", def.Presses, "Number of button presses for the pulse totals.")
	terminalFlag := flagSet.String("terminal", def.Terminal, "Module or sink analyzed for its first low pulse.")
	maxPressesFlag := flagSet.Int("max-presses", def.MaxPresses, "Press budget of the analyzer.")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := def
	if *configFlag != "" {
		var err error
		if cfg, err = app.LoadConfigFile(*configFlag, cfg); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Configuration file loaded.", "path", *configFlag)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *inputFlag
		case "presses":
			cfg.Presses = *pressesFlag
		case "terminal":
			cfg.Terminal = *terminalFlag
		case "max-presses":
			cfg.MaxPresses = *maxPressesFlag
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		}
	})
	if *inputFlag == "" && flagSet.NArg() > 0 {
		cfg.Input = flagSet.Arg(0)
	}
	slog.Debug("Input path determined.", "path", cfg.Input)

	if cfg.Input == "" {
		slog.Debug("No input provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
