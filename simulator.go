// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"context"

	"github.com/pkg/errors"
)

// An Emission records a pulse level emitted by a module during a press. A
// module emitting to several targets produces a single Emission.
//
type Emission struct {
	Press int
	From  string
	Level Level
}

// PressResult holds the outcome of a single press.
//
type PressResult struct {
	Press     int        // press index, starting at 1
	Low       uint64     // low pulses delivered, button pulse included
	High      uint64     // high pulses delivered
	Emissions []Emission // emissions of watched modules, in emission order
}

// Totals are cumulative pulse counts.
//
type Totals struct {
	Presses int
	Low     uint64
	High    uint64
}

// Product returns Low * High.
//
func (t Totals) Product() uint64 {
	return t.Low * t.High
}

// An Option configures a Simulator.
//
type Option func(s *Simulator)

// WithWatch adds modules whose emissions are reported in PressResult.
//
func WithWatch(names ...string) Option {
	return func(s *Simulator) { s.Watch(names...) }
}

// WithTimeline keeps the emissions of the given modules across presses. See
// Simulator.Timeline.
//
func WithTimeline(names ...string) Option {
	return func(s *Simulator) {
		for _, n := range names {
			if _, ok := s.timelines[n]; !ok {
				s.timelines[n] = nil
			}
		}
	}
}

// WithOnSend registers a function called for every pulse added to the queue.
//
func WithOnSend(fn func(p Pulse)) Option {
	return func(s *Simulator) {
		if fn != nil {
			s.onSend = fn
		}
	}
}

// WithOnDeliver registers a function called for every pulse removed from the
// queue, before the destination module processes it.
//
func WithOnDeliver(fn func(p Pulse)) Option {
	return func(s *Simulator) {
		if fn != nil {
			s.onDeliver = fn
		}
	}
}

// A Simulator presses the button of a Network and propagates the resulting
// pulses. Module states are updated in place.
//
// Each press runs to completion before Press returns. Pulses are processed in
// strict FIFO order: pulses sent while processing a pulse are queued after
// every pulse already in the queue, in target order.
//
type Simulator struct {
	net     *Network
	presses int
	low     uint64
	high    uint64

	queue []Pulse
	head  int

	watch     map[string]bool
	timelines map[string][]Emission
	onSend    func(Pulse)
	onDeliver func(Pulse)

	cur   *PressResult
	until *untilProbe
}

type untilProbe struct {
	to    string
	level Level
	hit   bool
}

// NewSimulator returns a new simulator for n. The simulator takes ownership of
// n: module states change with each press.
//
func NewSimulator(n *Network, opts ...Option) *Simulator {
	s := &Simulator{
		net:       n,
		watch:     make(map[string]bool),
		timelines: make(map[string][]Emission),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Network returns the simulated network.
//
func (s *Simulator) Network() *Network { return s.net }

// Watch adds modules whose emissions are reported in PressResult.
//
func (s *Simulator) Watch(names ...string) {
	for _, n := range names {
		s.watch[n] = true
	}
}

// Presses returns the number of presses so far.
//
func (s *Simulator) Presses() int { return s.presses }

// Totals returns the cumulative pulse counts.
//
func (s *Simulator) Totals() Totals {
	return Totals{Presses: s.presses, Low: s.low, High: s.high}
}

// Timeline returns the emissions of a module registered with WithTimeline,
// across all presses.
//
func (s *Simulator) Timeline(name string) []Emission {
	return append([]Emission(nil), s.timelines[name]...)
}

// Reset resets the network and all counters.
//
func (s *Simulator) Reset() {
	s.net.Reset()
	s.presses, s.low, s.high = 0, 0, 0
	for k := range s.timelines {
		s.timelines[k] = nil
	}
}

// Press presses the button once: a low pulse is sent from Button to
// Broadcaster, which forwards it to every broadcast target.
//
func (s *Simulator) Press() PressResult {
	s.presses++
	res := PressResult{Press: s.presses}
	s.cur = &res
	s.queue = s.queue[:0]
	s.head = 0

	s.send(Pulse{From: Button, To: Broadcaster, Level: Low})
	for s.head < len(s.queue) {
		p := s.queue[s.head]
		s.head++
		s.deliver(p)
	}

	s.cur = nil
	s.low += res.Low
	s.high += res.High
	return res
}

// Run presses the button n times and returns the cumulative totals.
//
func (s *Simulator) Run(n int) Totals {
	for i := 0; i < n; i++ {
		s.Press()
	}
	return s.Totals()
}

// PressUntil presses the button until the named module or sink receives a
// pulse of level l and returns the index of that press. It gives up with
// ErrNotConverged after maxPresses presses. ctx is only checked between
// presses.
//
func (s *Simulator) PressUntil(ctx context.Context, to string, l Level, maxPresses int) (int, error) {
	s.until = &untilProbe{to: to, level: l}
	defer func() { s.until = nil }()
	for i := 0; i < maxPresses; i++ {
		select {
		case <-ctx.Done():
			return s.presses, ctx.Err()
		default:
		}
		s.Press()
		if s.until.hit {
			return s.presses, nil
		}
	}
	return s.presses, errors.Wrapf(ErrNotConverged, "no %v pulse to %q after %d presses", l, to, maxPresses)
}

func (s *Simulator) send(p Pulse) {
	if s.onSend != nil {
		s.onSend(p)
	}
	s.queue = append(s.queue, p)
}

func (s *Simulator) deliver(p Pulse) {
	if p.Level == High {
		s.cur.High++
	} else {
		s.cur.Low++
	}
	if s.onDeliver != nil {
		s.onDeliver(p)
	}
	if u := s.until; u != nil && p.To == u.to && p.Level == u.level {
		u.hit = true
	}

	if p.To == Broadcaster {
		for _, t := range s.net.broadcast {
			s.send(Pulse{From: Broadcaster, To: t, Level: p.Level})
		}
		return
	}
	m := s.net.module(p.To)
	if m == nil {
		// external sink
		return
	}
	out, ok := m.Receive(p.From, p.Level)
	if !ok {
		return
	}
	s.emitted(m.Name, out)
	for _, t := range m.Targets {
		s.send(Pulse{From: m.Name, To: t, Level: out})
	}
}

func (s *Simulator) emitted(name string, l Level) {
	e := Emission{Press: s.presses, From: name, Level: l}
	if s.watch[name] {
		s.cur.Emissions = append(s.cur.Emissions, e)
	}
	if tl, ok := s.timelines[name]; ok {
		s.timelines[name] = append(tl, e)
	}
}
