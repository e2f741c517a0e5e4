// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import "sort"

// a link set is a set of module names.
//
type linkSet map[string]struct{}

func (s linkSet) add(name string) { s[name] = struct{}{} }

func (s linkSet) sorted() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// wire resolves the predecessors of every module and external sink. It must
// be called once, after all modules have been allocated.
//
func (n *Network) wire() {
	preds := make(map[string]linkSet, len(n.modules))
	link := func(from, to string) {
		s := preds[to]
		if s == nil {
			s = make(linkSet)
			preds[to] = s
		}
		s.add(from)
	}

	for i := range n.modules {
		m := &n.modules[i]
		for _, t := range m.Targets {
			link(m.Name, t)
		}
	}

	for i := range n.modules {
		m := &n.modules[i]
		m.Predecessors = preds[m.Name].sorted()
		if m.Kind != Conjunction {
			continue
		}
		m.memory = make(map[string]Level, len(m.Predecessors))
		for _, p := range m.Predecessors {
			m.memory[p] = Low
		}
	}

	for to, s := range preds {
		if !n.Has(to) {
			n.sinks[to] = s.sorted()
		}
	}
	// sinks fed by the broadcaster only have no module predecessors.
	for _, t := range n.broadcast {
		if _, ok := n.sinks[t]; !ok && !n.Has(t) {
			n.sinks[t] = nil
		}
	}
}
