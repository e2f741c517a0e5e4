// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"strings"

	"github.com/pkg/errors"
)

// A Declaration declares a module: its name, its kind and its ordered
// targets.
//
// A Relay declaration named Broadcaster is the press origin; its targets
// become the network's broadcast targets.
//
type Declaration struct {
	Name    string
	Kind    Kind
	Targets []string
}

// String returns the declaration in its textual form.
//
func (d Declaration) String() string {
	var b strings.Builder
	if t := d.Kind.Tag(); t != 0 {
		b.WriteRune(t)
	}
	b.WriteString(d.Name)
	b.WriteString(" ->")
	for i, t := range d.Targets {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(t)
	}
	return b.String()
}

func (d *Declaration) isBroadcaster() bool {
	return d.Name == Broadcaster && d.Kind == Relay
}

// Build builds a Network from a list of declarations.
//
// Declared modules are created first, then every target that names a module
// gets the declaring module added to its predecessors (and to its memory if
// it is a Conjunction). Targets that name no module are external sinks.
//
// For example, the following network has three flip-flops, one conjunction
// and an external sink "out":
//
//	net, err := Build([]Declaration{
//		{Name: "broadcaster", Targets: []string{"a", "b", "c"}},
//		{Name: "a", Kind: FlipFlop, Targets: []string{"b"}},
//		{Name: "b", Kind: FlipFlop, Targets: []string{"c"}},
//		{Name: "c", Kind: FlipFlop, Targets: []string{"inv"}},
//		{Name: "inv", Kind: Conjunction, Targets: []string{"a", "out"}},
//	})
//
// Build does not simulate anything.
//
func Build(decls []Declaration) (*Network, error) {
	n := newNetwork(len(decls))
	seenBroadcast := false

	for i := range decls {
		d := &decls[i]
		if err := checkDeclaration(d); err != nil {
			return nil, errors.Wrapf(err, "declaration %d", i+1)
		}
		if d.isBroadcaster() {
			if seenBroadcast {
				return nil, errors.Wrapf(ErrMalformedDeclaration, "declaration %d: duplicate %s", i+1, Broadcaster)
			}
			seenBroadcast = true
			n.broadcast = append([]string(nil), d.Targets...)
			continue
		}
		if d.Name == Broadcaster {
			return nil, errors.Wrapf(ErrMalformedDeclaration, "declaration %d: %s cannot be a %v", i+1, Broadcaster, d.Kind)
		}
		if n.Has(d.Name) {
			return nil, errors.Wrapf(ErrMalformedDeclaration, "declaration %d: duplicate module %q", i+1, d.Name)
		}
		n.alloc(Module{
			Name:    d.Name,
			Kind:    d.Kind,
			Targets: append([]string(nil), d.Targets...),
		})
	}

	n.wire()
	return n, nil
}

func checkDeclaration(d *Declaration) error {
	if d.Kind < 0 || d.Kind >= kindCount {
		return errors.Wrapf(ErrUnknownModuleKind, "module %q: %v", d.Name, d.Kind)
	}
	if !validName(d.Name) {
		return errors.Wrapf(ErrMalformedDeclaration, "invalid module name %q", d.Name)
	}
	for _, t := range d.Targets {
		if !validName(t) {
			return errors.Wrapf(ErrMalformedDeclaration, "module %q: invalid target name %q", d.Name, t)
		}
	}
	return nil
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n,") && !strings.Contains(name, "->")
}
