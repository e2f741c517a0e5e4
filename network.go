// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import "sort"

// Broadcaster is the name of the press origin. Its declaration gives the
// broadcast targets; it is not a module.
//
const Broadcaster = "broadcaster"

// Button is the source name of the pulse that starts each press.
//
const Button = "button"

// A Network is a set of modules indexed by name. It is the sole owner of its
// modules: targets and predecessors are names resolved through the network.
//
type Network struct {
	modules   []Module
	index     map[string]int
	broadcast []string
	// predecessors of names that are targeted but not declared.
	sinks map[string][]string
}

func newNetwork(size int) *Network {
	return &Network{
		modules: make([]Module, 0, size),
		index:   make(map[string]int, size),
		sinks:   make(map[string][]string),
	}
}

// alloc adds a module to the network and returns its index.
//
func (n *Network) alloc(m Module) int {
	i := len(n.modules)
	n.modules = append(n.modules, m)
	n.index[m.Name] = i
	return i
}

// module returns a pointer to the named module, or nil if name is not a
// module of n. The pointer must not outlive the next call to alloc.
//
func (n *Network) module(name string) *Module {
	i, ok := n.index[name]
	if !ok {
		return nil
	}
	return &n.modules[i]
}

// Module returns a copy of the named module.
//
func (n *Network) Module(name string) (Module, bool) {
	m := n.module(name)
	if m == nil {
		return Module{}, false
	}
	return m.clone(), true
}

// Has returns true if name is a module of n.
//
func (n *Network) Has(name string) bool {
	_, ok := n.index[name]
	return ok
}

// Names returns the module names in declaration order.
//
func (n *Network) Names() []string {
	names := make([]string, len(n.modules))
	for i := range n.modules {
		names[i] = n.modules[i].Name
	}
	return names
}

// Len returns the module count.
//
func (n *Network) Len() int { return len(n.modules) }

// BroadcastTargets returns the modules receiving the initial low pulse of each
// press, in order.
//
func (n *Network) BroadcastTargets() []string {
	return append([]string(nil), n.broadcast...)
}

// Predecessors returns the sorted names of the modules targeting name. name
// may be a module or an external sink.
//
func (n *Network) Predecessors(name string) []string {
	if m := n.module(name); m != nil {
		return append([]string(nil), m.Predecessors...)
	}
	return append([]string(nil), n.sinks[name]...)
}

// Sinks returns the sorted names that are targeted but not declared.
//
func (n *Network) Sinks() []string {
	s := make([]string, 0, len(n.sinks))
	for k := range n.sinks {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// State returns the state of the named module. It returns Low for unknown
// names.
//
func (n *Network) State(name string) Level {
	if m := n.module(name); m != nil {
		return m.State
	}
	return Low
}

// Reset puts all modules back into their power-on state.
//
func (n *Network) Reset() {
	for i := range n.modules {
		n.modules[i].reset()
	}
}

// Clone returns a deep copy of n, current module states included.
//
func (n *Network) Clone() *Network {
	c := newNetwork(len(n.modules))
	for i := range n.modules {
		c.alloc(n.modules[i].clone())
	}
	c.broadcast = append([]string(nil), n.broadcast...)
	for k, v := range n.sinks {
		c.sinks[k] = append([]string(nil), v...)
	}
	return c
}
