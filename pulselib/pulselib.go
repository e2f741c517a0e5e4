// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pulselib provides reusable network fragments for pulsesim, as
// declarations ready to be passed to pulsesim.Build.
//
package pulselib

import (
	"math/bits"
	"strconv"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
)

// Broadcaster returns the broadcaster declaration.
//
func Broadcaster(targets ...string) pulsesim.Declaration {
	return pulsesim.Declaration{Name: pulsesim.Broadcaster, Kind: pulsesim.Relay, Targets: targets}
}

// FlipFlop returns a flip-flop declaration.
//
//	Function: on low, state = !state; send state
//
func FlipFlop(name string, targets ...string) pulsesim.Declaration {
	return pulsesim.Declaration{Name: name, Kind: pulsesim.FlipFlop, Targets: targets}
}

// Conjunction returns a conjunction declaration.
//
//	Function: mem[from] = in; send !(mem[0] && mem[1] && ...)
//
func Conjunction(name string, targets ...string) pulsesim.Declaration {
	return pulsesim.Declaration{Name: name, Kind: pulsesim.Conjunction, Targets: targets}
}

// Relay returns a relay declaration. A relay delays pulses by one hop.
//
//	Function: send in
//
func Relay(name string, targets ...string) pulsesim.Declaration {
	return pulsesim.Declaration{Name: name, Kind: pulsesim.Relay, Targets: targets}
}

// Inverter returns a conjunction with a single input, which inverts it.
//
//	Function: send !in
//
func Inverter(name string, target string) pulsesim.Declaration {
	return Conjunction(name, target)
}

// CounterInput returns the name of the module that receives the count pulses
// of the counter with the given prefix.
//
func CounterInput(prefix string) string { return bitName(prefix, 0) }

// CounterOutput returns the name of the module that sends the output pulses
// of the counter with the given prefix.
//
func CounterOutput(prefix string) string { return prefix + "out" }

func bitName(prefix string, i int) string { return prefix + strconv.Itoa(i) }

// Counter returns a ripple counter that counts low pulses sent to
// CounterInput(prefix) modulo period.
//
// When the count reaches period, the output module CounterOutput(prefix)
// sends a high pulse immediately followed, within the same press, by a low
// pulse. When driven once per press from power-on, it thus sends high at
// presses period, 2*period, and so on, and low otherwise.
//
// The counter is made of flip-flops prefix0 to prefixN (bit 0 is the least
// significant), a conjunction prefix+"cmp" that goes low when the bits set
// in period are all high, and an inverter prefix+"out". On a match, the
// comparator flips the bits needed to wrap the count back to zero.
//
func Counter(prefix string, period int, target string) ([]pulsesim.Declaration, error) {
	if period < 1 {
		return nil, errors.Wrapf(pulsesim.ErrMalformedDeclaration, "counter %q: period %d < 1", prefix, period)
	}
	p := uint(period)
	n := bits.Len(p)
	cmp := prefix + "cmp"
	reset := uint(1)<<uint(n) - p

	decls := make([]pulsesim.Declaration, 0, n+2)
	for i := 0; i < n; i++ {
		var ts []string
		if i < n-1 {
			ts = append(ts, bitName(prefix, i+1))
		}
		if p&(1<<uint(i)) != 0 {
			ts = append(ts, cmp)
		}
		decls = append(decls, FlipFlop(bitName(prefix, i), ts...))
	}

	var ts []string
	for i := 0; i < n; i++ {
		if reset&(1<<uint(i)) != 0 {
			ts = append(ts, bitName(prefix, i))
		}
	}
	ts = append(ts, CounterOutput(prefix))
	decls = append(decls,
		Conjunction(cmp, ts...),
		Inverter(CounterOutput(prefix), target))
	return decls, nil
}

// Guard returns the declarations feeding terminal from a conjunction named
// guard, itself fed by one counter per period, all driven by the broadcaster.
// Counter i uses the prefix "c<i>_" and is delayed by len(periods)-1-i relays
// so that the short counters catch up with the long ones.
//
// Whatever the layout, each counter output sends high at multiples of its
// period, so an Analyzer on terminal reports the least common multiple of the
// periods. Whether terminal actually receives a low pulse at that press
// depends on the output pulses overlapping at the guard.
//
func Guard(guard, terminal string, periods ...int) ([]pulsesim.Declaration, error) {
	var (
		decls []pulsesim.Declaration
		bcast []string
	)
	for i, p := range periods {
		prefix := "c" + strconv.Itoa(i) + "_"
		cd, err := Counter(prefix, p, guard)
		if err != nil {
			return nil, err
		}
		in := CounterInput(prefix)
		for j := len(periods) - 1 - i; j > 0; j-- {
			name := prefix + "r" + strconv.Itoa(j)
			decls = append(decls, Relay(name, in))
			in = name
		}
		bcast = append(bcast, in)
		decls = append(decls, cd...)
	}
	decls = append(decls, Conjunction(guard, terminal))
	return append([]pulsesim.Declaration{Broadcaster(bcast...)}, decls...), nil
}
