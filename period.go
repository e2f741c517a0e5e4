// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"context"
	"io"
	"log/slog"
	"math/bits"

	"github.com/pkg/errors"
)

// A Cycle is the periodicity record of a watched module. Period is the first
// press index at which the module emitted a high pulse in its current
// hypothesis, or 0 if it has not emitted any yet. Repeats counts the
// consistent occurrences seen for that hypothesis.
//
type Cycle struct {
	Repeats int
	Period  int
}

// Confirmed returns true once a second consistent occurrence has been seen.
// A confirmed cycle no longer changes.
//
func (c Cycle) Confirmed() bool { return c.Repeats >= 2 }

type cycle struct {
	Cycle
	last int // press of the last recorded occurrence
}

// An AnalyzerOption configures an Analyzer.
//
type AnalyzerOption func(a *Analyzer)

// WithLogger sets the logger used to report hypothesis changes. By default,
// nothing is logged.
//
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// An Analyzer predicts the first press at which a terminal receives a low
// pulse, assuming that:
//
//   - the terminal has a single predecessor, the guard, which is a Conjunction;
//   - each predecessor of the guard emits a high pulse every p presses,
//     starting at press p.
//
// The guard then sends low when all of its predecessors have just sent high,
// that is at the least common multiple of their periods. The period of a
// module is taken from its first high pulse and confirmed when a later one
// happens at a multiple of it; otherwise tracking restarts from the later
// one. This is a heuristic, not a proof of periodicity.
//
type Analyzer struct {
	net      *Network
	terminal string
	guard    string
	watched  []string
	cycles   map[string]*cycle
	logger   *slog.Logger
}

// NewAnalyzer returns an Analyzer for the given terminal module or sink of n.
// It returns ErrUnsupportedTopology if the terminal does not have exactly one
// predecessor, if that predecessor is not a Conjunction with at least one
// predecessor, or if the terminal is also a broadcast target.
//
func NewAnalyzer(n *Network, terminal string, opts ...AnalyzerOption) (*Analyzer, error) {
	for _, t := range n.broadcast {
		if t == terminal {
			return nil, errors.Wrapf(ErrUnsupportedTopology, "terminal %q is a target of %s", terminal, Broadcaster)
		}
	}
	preds := n.Predecessors(terminal)
	if len(preds) != 1 {
		return nil, errors.Wrapf(ErrUnsupportedTopology, "terminal %q has %d predecessors, need exactly one", terminal, len(preds))
	}
	guard := n.module(preds[0])
	if guard.Kind != Conjunction {
		return nil, errors.Wrapf(ErrUnsupportedTopology, "guard %q of %q is a %v, need a %v", guard.Name, terminal, guard.Kind, Conjunction)
	}
	if len(guard.Predecessors) == 0 {
		return nil, errors.Wrapf(ErrUnsupportedTopology, "guard %q of %q has no predecessors", guard.Name, terminal)
	}

	a := &Analyzer{
		net:      n,
		terminal: terminal,
		guard:    guard.Name,
		watched:  append([]string(nil), guard.Predecessors...),
		cycles:   make(map[string]*cycle, len(guard.Predecessors)),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, w := range a.watched {
		a.cycles[w] = &cycle{}
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Guard returns the name of the terminal's predecessor.
//
func (a *Analyzer) Guard() string { return a.guard }

// Watched returns the sorted names of the guard's predecessors.
//
func (a *Analyzer) Watched() []string {
	return append([]string(nil), a.watched...)
}

// Observe records an emission. Emissions of modules that are not watched, low
// emissions, emissions with a press index below 1 and repeated emissions
// within the same press are ignored.
//
func (a *Analyzer) Observe(e Emission) {
	c := a.cycles[e.From]
	if c == nil || e.Level != High || e.Press < 1 || c.Confirmed() || e.Press == c.last {
		return
	}
	c.last = e.Press
	switch {
	case c.Period == 0:
		c.Period, c.Repeats = e.Press, 1
	case e.Press%c.Period == 0:
		c.Repeats++
		a.logger.Debug("cycle confirmed", "module", e.From, "period", c.Period, "press", e.Press)
	default:
		a.logger.Debug("cycle reset", "module", e.From, "was", c.Period, "press", e.Press)
		c.Period, c.Repeats = e.Press, 1
	}
}

// Converged returns true when every watched module has a confirmed cycle.
//
func (a *Analyzer) Converged() bool {
	for _, c := range a.cycles {
		if !c.Confirmed() {
			return false
		}
	}
	return true
}

// Cycles returns a snapshot of the cycle records by module name.
//
func (a *Analyzer) Cycles() map[string]Cycle {
	r := make(map[string]Cycle, len(a.cycles))
	for k, c := range a.cycles {
		r[k] = c.Cycle
	}
	return r
}

// Period returns the least common multiple of the confirmed periods. It
// returns ErrNotConverged if some cycles are not confirmed yet.
//
func (a *Analyzer) Period() (uint64, error) {
	var p uint64 = 1
	for _, w := range a.watched {
		c := a.cycles[w]
		if !c.Confirmed() {
			return 0, errors.Wrapf(ErrNotConverged, "cycle of %q not confirmed", w)
		}
		var ok bool
		if p, ok = lcm(p, uint64(c.Period)); !ok {
			return 0, errors.Wrapf(ErrPeriodOverflow, "at %q", w)
		}
	}
	return p, nil
}

// Run simulates a copy of the network, starting from its power-on state,
// until all cycles are confirmed, and returns the combined period. It returns
// ErrNotConverged if that does not happen within maxPresses presses. ctx is
// checked between presses.
//
func (a *Analyzer) Run(ctx context.Context, maxPresses int) (uint64, error) {
	net := a.net.Clone()
	net.Reset()
	sim := NewSimulator(net, WithWatch(a.watched...))
	for i := 0; i < maxPresses; i++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		res := sim.Press()
		for _, e := range res.Emissions {
			a.Observe(e)
		}
		if a.Converged() {
			a.logger.Debug("cycles converged", "terminal", a.terminal, "guard", a.guard, "presses", res.Press)
			return a.Period()
		}
	}
	return 0, errors.Wrapf(ErrNotConverged, "%d presses", maxPresses)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm returns the least common multiple of a and b, and false on overflow.
//
func lcm(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(a/gcd(a, b), b)
	return lo, hi == 0
}
