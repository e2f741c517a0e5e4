// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import "strconv"

// Level is the level of a pulse.
//
type Level bool

// Pulse levels.
//
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// A Pulse travels from one module to another. Pulses only live in the
// simulator queue.
//
type Pulse struct {
	From  string
	To    string
	Level Level
}

func (p Pulse) String() string {
	return p.From + " -" + p.Level.String() + "-> " + p.To
}

// Kind is the kind of a module.
//
type Kind int

// Module kinds.
//
// Relay is the fallback kind: it forwards any pulse unchanged to its
// targets. It is used for untagged declarations that are not the broadcaster.
//
const (
	Relay Kind = iota
	FlipFlop
	Conjunction
	kindCount
)

var kindNames = [...]string{
	Relay:       "relay",
	FlipFlop:    "flip-flop",
	Conjunction: "conjunction",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Tag returns the declaration tag for k, or 0 for Relay.
//
func (k Kind) Tag() rune {
	switch k {
	case FlipFlop:
		return '%'
	case Conjunction:
		return '&'
	}
	return 0
}

// KindOf returns the module kind for a declaration tag.
//
func KindOf(tag rune) (Kind, bool) {
	switch tag {
	case '%':
		return FlipFlop, true
	case '&':
		return Conjunction, true
	}
	return Relay, false
}

// A Module is a node in a Network.
//
// Targets and Predecessors are module names resolved through the Network
// that owns the module. Predecessors is sorted and set once by Build.
//
type Module struct {
	Name         string
	Kind         Kind
	State        Level
	Targets      []string
	Predecessors []string

	// last level received from each predecessor (Conjunction only).
	memory map[string]Level
}

// Memory returns the last level received from predecessor name. It always
// returns Low for modules other than Conjunctions.
//
func (m *Module) Memory(name string) Level {
	return m.memory[name]
}

// Receive applies an incoming pulse to m and returns the level to send to
// each of m's targets, if any. Only m is modified.
//
//	FlipFlop:    high is absorbed, low flips the state and emits it.
//	Conjunction: records the level for from, then state = NAND(memory),
//	             always emitted.
//	Relay:       emits the incoming level.
//
func (m *Module) Receive(from string, l Level) (out Level, emit bool) {
	switch m.Kind {
	case FlipFlop:
		if l == High {
			return Low, false
		}
		m.State = !m.State
		return m.State, true
	case Conjunction:
		// pulses from unregistered sources cannot be remembered: the
		// memory holds exactly the predecessors set by Build.
		if _, ok := m.memory[from]; ok {
			m.memory[from] = l
		}
		m.State = Level(!m.allHigh())
		return m.State, true
	default:
		return l, true
	}
}

func (m *Module) allHigh() bool {
	for _, l := range m.memory {
		if l == Low {
			return false
		}
	}
	return true
}

// reset puts m back into its power-on state.
//
func (m *Module) reset() {
	m.State = Low
	for k := range m.memory {
		m.memory[k] = Low
	}
}

// clone returns a deep copy of m.
//
func (m *Module) clone() Module {
	c := *m
	c.Targets = append([]string(nil), m.Targets...)
	c.Predecessors = append([]string(nil), m.Predecessors...)
	if m.memory != nil {
		c.memory = make(map[string]Level, len(m.memory))
		for k, v := range m.memory {
			c.memory[k] = v
		}
	}
	return c
}
