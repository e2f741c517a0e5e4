// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
//
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp returns an App writing its report to outW and its logs to logW.
//
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// A Report holds the results of a run.
//
type Report struct {
	Totals pulsesim.Totals
	Guard  string
	Period uint64 // 0 if the analyzer does not apply
}

// Run loads the network, presses the button the configured number of times,
// runs the analyzer on the terminal and writes the report.
//
func (a *App) Run(ctx context.Context) error {
	f, err := os.Open(a.config.Input)
	if err != nil {
		return errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	r, err := a.run(ctx, f)
	if err != nil {
		return err
	}
	a.writeReport(r)
	return nil
}

func (a *App) run(ctx context.Context, in io.Reader) (*Report, error) {
	n, err := pulsesim.ParseNetwork(in)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to load %s", a.config.Input)
	}
	a.logger.Info("Network loaded.", "modules", n.Len(), "sinks", n.Sinks())

	var r Report
	sim := pulsesim.NewSimulator(n.Clone())
	for i := 0; i < a.config.Presses; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sim.Press()
	}
	r.Totals = sim.Totals()
	a.logger.Info("Simulation complete.", "presses", r.Totals.Presses, "low", r.Totals.Low, "high", r.Totals.High)

	an, err := pulsesim.NewAnalyzer(n, a.config.Terminal, pulsesim.WithLogger(a.logger))
	if errors.Is(err, pulsesim.ErrUnsupportedTopology) {
		a.logger.Warn("Analyzer does not apply.", "terminal", a.config.Terminal, "error", err)
		return &r, nil
	}
	if err != nil {
		return nil, err
	}
	r.Guard = an.Guard()
	a.logger.Debug("Analyzer started.", "guard", r.Guard, "watched", an.Watched(), "max_presses", a.config.MaxPresses)
	if r.Period, err = an.Run(ctx, a.config.MaxPresses); err != nil {
		return nil, errors.WithMessagef(err, "analyzer on %q", a.config.Terminal)
	}
	a.logger.Info("Analyzer complete.", "period", r.Period)
	return &r, nil
}

func (a *App) writeReport(r *Report) {
	fmt.Fprintf(a.outW, "presses: %d\n", r.Totals.Presses)
	fmt.Fprintf(a.outW, "low: %d\n", r.Totals.Low)
	fmt.Fprintf(a.outW, "high: %d\n", r.Totals.High)
	fmt.Fprintf(a.outW, "product: %d\n", r.Totals.Product())
	if r.Period == 0 {
		fmt.Fprintf(a.outW, "%s: unsupported topology\n", a.config.Terminal)
		return
	}
	fmt.Fprintf(a.outW, "%s: first low pulse at press %d (guard %s)\n", a.config.Terminal, r.Period, r.Guard)
}
