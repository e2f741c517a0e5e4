// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import "github.com/pkg/errors"

// Errors returned by the network builder, the simulator and the analyzer.
// Returned errors wrap one of these with context; use errors.Is to test for
// them.
//
var (
	// ErrMalformedDeclaration is returned when a declaration cannot be
	// turned into a (name, kind, targets) triple, or conflicts with another
	// declaration.
	ErrMalformedDeclaration = errors.New("malformed declaration")

	// ErrUnknownModuleKind is returned for a kind tag outside the supported
	// set.
	ErrUnknownModuleKind = errors.New("unknown module kind")

	// ErrUnsupportedTopology is returned by NewAnalyzer when the terminal
	// does not have a single Conjunction guard.
	ErrUnsupportedTopology = errors.New("unsupported topology")

	// ErrNotConverged is returned when a press budget is exhausted before a
	// result is available.
	ErrNotConverged = errors.New("not converged")

	// ErrPeriodOverflow is returned when the combined period does not fit
	// in an uint64.
	ErrPeriodOverflow = errors.New("combined period overflows uint64")
)
