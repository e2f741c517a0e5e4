// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"io"
	"strings"

	"github.com/db47h/pulsesim/internal/decl"
	"github.com/pkg/errors"
)

// ParseDeclaration parses a single declaration like:
//
//	%a -> b, c
//
// The tag '%' declares a FlipFlop, '&' a Conjunction. An untagged declaration
// is the broadcaster if its name is Broadcaster, and a Relay otherwise.
//
func ParseDeclaration(line string) (Declaration, error) {
	d, err := decl.Parse(line)
	if err != nil {
		return Declaration{}, errors.WithMessage(ErrMalformedDeclaration, err.Error())
	}
	nd, err := convert(&d)
	if err != nil {
		return Declaration{}, errors.WithMessagef(err, "in %q", line)
	}
	return nd, nil
}

// ParseDeclarations parses declarations from r, one per line. Blank lines are
// ignored.
//
func ParseDeclarations(r io.Reader) ([]Declaration, error) {
	var decls []Declaration
	s := decl.NewScanner(r)
	for s.Scan() {
		d := s.Decl()
		nd, err := convert(&d)
		if err != nil {
			return nil, errors.WithMessagef(err, "line %d", d.Line)
		}
		decls = append(decls, nd)
	}
	if err := s.Err(); err != nil {
		if _, ok := err.(*decl.SyntaxError); ok {
			return nil, errors.WithMessage(ErrMalformedDeclaration, err.Error())
		}
		return nil, err
	}
	return decls, nil
}

// ParseNetwork parses declarations from r and builds a Network.
//
func ParseNetwork(r io.Reader) (*Network, error) {
	decls, err := ParseDeclarations(r)
	if err != nil {
		return nil, err
	}
	return Build(decls)
}

// MustParseNetwork is like ParseNetwork for a string input, and panics on
// error. It simplifies the declaration of networks in tests and examples.
//
func MustParseNetwork(s string) *Network {
	n, err := ParseNetwork(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return n
}

func convert(d *decl.Decl) (Declaration, error) {
	nd := Declaration{Name: d.Name, Kind: Relay, Targets: d.Targets}
	if d.Tag == 0 {
		return nd, nil
	}
	k, ok := KindOf(d.Tag)
	if !ok {
		return Declaration{}, errors.Wrapf(ErrUnknownModuleKind, "at pos %d: tag %q of module %q", d.TagPos+1, d.Tag, d.Name)
	}
	nd.Kind = k
	return nd, nil
}
