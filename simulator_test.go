package pulsesim_test

import (
	"context"
	"testing"

	ps "github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/pulsetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPress_broadcastOnly(t *testing.T) {
	for _, src := range []string{
		"broadcaster -> a, b, c\n%a ->\n%b ->\n%c ->",
		"broadcaster -> a, b, c",
	} {
		s := ps.NewSimulator(ps.MustParseNetwork(src))
		r := s.Press()
		assert.Equal(t, uint64(4), r.Low, src)
		assert.Equal(t, uint64(0), r.High, src)
		assert.Equal(t, 1, r.Press)
	}
}

func TestPress_order(t *testing.T) {
	var rec pulsetest.Recorder
	n, err := ps.Build(network1)
	require.NoError(t, err)
	s := ps.NewSimulator(n, rec.Options()...)
	r := s.Press()

	var got []string
	for _, p := range rec.Delivered {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"button -low-> broadcaster",
		"broadcaster -low-> a",
		"broadcaster -low-> b",
		"broadcaster -low-> c",
		"a -high-> b",
		"b -high-> c",
		"c -high-> inv",
		"inv -low-> a",
		"a -low-> b",
		"b -low-> c",
		"c -low-> inv",
		"inv -high-> a",
	}, got)
	assert.Equal(t, uint64(8), r.Low)
	assert.Equal(t, uint64(4), r.High)
}

func TestRun(t *testing.T) {
	n1, err := ps.Build(network1)
	require.NoError(t, err)
	td := []struct {
		name    string
		n       *ps.Network
		low     uint64
		high    uint64
		product uint64
	}{
		{"network1", n1, 8000, 4000, 32000000},
		{"network2", ps.MustParseNetwork(network2), 4250, 2750, 11687500},
	}
	for _, d := range td {
		s := ps.NewSimulator(d.n)
		tot := s.Run(1000)
		assert.Equal(t, 1000, tot.Presses, d.name)
		assert.Equal(t, d.low, tot.Low, d.name)
		assert.Equal(t, d.high, tot.High, d.name)
		assert.Equal(t, d.product, tot.Product(), d.name)

		s.Reset()
		assert.Equal(t, ps.Totals{}, s.Totals(), d.name)
		assert.Equal(t, tot, s.Run(1000), d.name)
	}
}

func TestPress_conservation(t *testing.T) {
	var rec pulsetest.Recorder
	s := ps.NewSimulator(ps.MustParseNetwork(network2), rec.Options()...)
	for i := 0; i < 20; i++ {
		rec.Reset()
		r := s.Press()
		require.Equal(t, rec.Sent, rec.Delivered)
		require.Equal(t, uint64(len(rec.Delivered)), r.Low+r.High)
	}
}

func TestPress_deterministic(t *testing.T) {
	n1, err := ps.Build(network1)
	require.NoError(t, err)
	n2, err := ps.Build(network1)
	require.NoError(t, err)
	pulsetest.CompareNetworks(t, 200, n1, n2, "a", "inv")

	pulsetest.CompareNetworks(t, 200, ps.MustParseNetwork(network2), ps.MustParseNetwork(network2), "con")
}

func TestPress_watch(t *testing.T) {
	n, err := ps.Build(network1)
	require.NoError(t, err)
	s := ps.NewSimulator(n, ps.WithWatch("a"), ps.WithTimeline("inv"))
	r := s.Press()
	assert.Equal(t, []ps.Emission{
		{Press: 1, From: "a", Level: ps.High},
		{Press: 1, From: "a", Level: ps.Low},
	}, r.Emissions)

	s.Press()
	assert.Equal(t, []ps.Emission{
		{Press: 1, From: "inv", Level: ps.Low},
		{Press: 1, From: "inv", Level: ps.High},
		{Press: 2, From: "inv", Level: ps.Low},
		{Press: 2, From: "inv", Level: ps.High},
	}, s.Timeline("inv"))
	assert.Nil(t, s.Timeline("a"))

	s.Reset()
	assert.Empty(t, s.Timeline("inv"))
}

func TestPressUntil(t *testing.T) {
	ctx := context.Background()
	s := ps.NewSimulator(ps.MustParseNetwork(network2))
	p, err := s.PressUntil(ctx, "output", ps.Low, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, p)

	p, err = s.PressUntil(ctx, "nowhere", ps.Low, 5)
	assert.True(t, errors.Is(err, ps.ErrNotConverged), "got %v", err)
	assert.Equal(t, 6, p)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.PressUntil(cctx, "output", ps.Low, 5)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 6, s.Presses())
}
