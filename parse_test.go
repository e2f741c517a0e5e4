package pulsesim_test

import (
	"strings"
	"testing"

	ps "github.com/db47h/pulsesim"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclaration(t *testing.T) {
	td := []struct {
		in   string
		want ps.Declaration
		err  error
	}{
		{in: "%a -> b, c", want: ps.Declaration{Name: "a", Kind: ps.FlipFlop, Targets: []string{"b", "c"}}},
		{in: "&inv->a", want: ps.Declaration{Name: "inv", Kind: ps.Conjunction, Targets: []string{"a"}}},
		{in: "broadcaster -> a, b", want: ps.Declaration{Name: "broadcaster", Targets: []string{"a", "b"}}},
		{in: "  relay -> x  ", want: ps.Declaration{Name: "relay", Targets: []string{"x"}}},
		{in: "%end ->", want: ps.Declaration{Name: "end", Kind: ps.FlipFlop}},
		{in: "%a b", err: ps.ErrMalformedDeclaration},
		{in: "-> b", err: ps.ErrMalformedDeclaration},
		{in: "a -> b,", err: ps.ErrMalformedDeclaration},
		{in: "a -> b c", err: ps.ErrMalformedDeclaration},
		{in: "", err: ps.ErrMalformedDeclaration},
		{in: "$a -> b", err: ps.ErrUnknownModuleKind},
	}
	for _, d := range td {
		got, err := ps.ParseDeclaration(d.in)
		if d.err != nil {
			assert.True(t, errors.Is(err, d.err), "%q: got error %v", d.in, err)
			continue
		}
		require.NoError(t, err, d.in)
		if diff := cmp.Diff(d.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", d.in, diff)
		}
	}
}

func TestParseDeclaration_roundTrip(t *testing.T) {
	for _, d := range network1 {
		got, err := ps.ParseDeclaration(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestParseDeclarations(t *testing.T) {
	decls, err := ps.ParseDeclarations(strings.NewReader(network2))
	require.NoError(t, err)
	require.Len(t, decls, 5)
	assert.Equal(t, "&con -> output", decls[4].String())

	_, err = ps.ParseDeclarations(strings.NewReader("broadcaster -> a\n\n%a b\n"))
	require.True(t, errors.Is(err, ps.ErrMalformedDeclaration), "got %v", err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "pos 4")

	_, err = ps.ParseDeclarations(strings.NewReader("broadcaster -> a\n $a -> b\n"))
	require.True(t, errors.Is(err, ps.ErrUnknownModuleKind), "got %v", err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "at pos 2")

	_, err = ps.ParseDeclaration(" $a -> b")
	require.True(t, errors.Is(err, ps.ErrUnknownModuleKind), "got %v", err)
	assert.Contains(t, err.Error(), "at pos 2")
}

func TestParseNetwork(t *testing.T) {
	_, err := ps.ParseNetwork(strings.NewReader("%a -> b\n&a -> c\n"))
	assert.True(t, errors.Is(err, ps.ErrMalformedDeclaration), "got %v", err)

	assert.Panics(t, func() { ps.MustParseNetwork("%a") })
}
