package pulsesim_test

import (
	"context"
	"fmt"

	ps "github.com/db47h/pulsesim"
)

func Example() {
	n := ps.MustParseNetwork(`
broadcaster -> a
%a -> inv, con
&inv -> b
%b -> con
&con -> output
`)
	s := ps.NewSimulator(n)
	tot := s.Run(1000)
	fmt.Println(tot.Low, tot.High, tot.Product())
	fmt.Println(n.Sinks())

	// Output:
	// 4250 2750 11687500
	// [output]
}

func ExampleAnalyzer() {
	n := ps.MustParseNetwork(cycles34)
	a, err := ps.NewAnalyzer(n, "rx")
	if err != nil {
		fmt.Println(err)
		return
	}
	p, err := a.Run(context.Background(), 1000)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(a.Guard(), a.Watched(), p)

	// Output:
	// g [inv inv2] 12
}

func ExampleSimulator_PressUntil() {
	n := ps.MustParseNetwork("broadcaster -> a\n%a -> b\n%b -> c\n%c -> out")
	s := ps.NewSimulator(n)
	p, err := s.PressUntil(context.Background(), "out", ps.High, 100)
	fmt.Println(p, err)

	_, err = ps.NewAnalyzer(n, "out")
	fmt.Println(err)

	// Output:
	// 4 <nil>
	// guard "c" of "out" is a flip-flop, need a conjunction: unsupported topology
}
