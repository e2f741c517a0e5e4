// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pulsetest provides utility functions for testing networks.
//
package pulsetest

import (
	"testing"
	"time"

	"github.com/db47h/pulsesim"
	"github.com/google/go-cmp/cmp"
)

// A Recorder records the pulses sent and delivered by a Simulator.
//
type Recorder struct {
	Sent      []pulsesim.Pulse
	Delivered []pulsesim.Pulse
}

// Options returns the simulator options that feed the recorder.
//
func (r *Recorder) Options() []pulsesim.Option {
	return []pulsesim.Option{
		pulsesim.WithOnSend(func(p pulsesim.Pulse) { r.Sent = append(r.Sent, p) }),
		pulsesim.WithOnDeliver(func(p pulsesim.Pulse) { r.Delivered = append(r.Delivered, p) }),
	}
}

// Reset clears the recorded pulses.
//
func (r *Recorder) Reset() {
	r.Sent = r.Sent[:0]
	r.Delivered = r.Delivered[:0]
}

// CompareNetworks presses the button of two networks in lockstep and fails the
// test on the first press where their pulse counts, or the emissions of the
// watched modules, differ. Both networks are reset first.
//
func CompareNetworks(t *testing.T, presses int, n1, n2 *pulsesim.Network, watch ...string) {
	t.Helper()

	n1.Reset()
	n2.Reset()
	s1 := pulsesim.NewSimulator(n1, pulsesim.WithWatch(watch...))
	s2 := pulsesim.NewSimulator(n2, pulsesim.WithWatch(watch...))

	start := time.Now()
	for i := 0; i < presses; i++ {
		r1, r2 := s1.Press(), s2.Press()
		if diff := cmp.Diff(r1, r2); diff != "" {
			t.Fatalf("press %d: results differ (-n1 +n2):\n%s", r1.Press, diff)
		}
	}
	tot := s1.Totals()
	t.Logf("%d modules. %d presses, %d pulses in %v", n1.Len(), tot.Presses, tot.Low+tot.High, time.Since(start))
}
