/*
Package pulsesim provides a discrete-event simulator for networks of modules
exchanging binary pulses, and an analyzer that predicts when such a network
reaches a given state without simulating it press by press.

A network is built from declarations, usually parsed from text:

	broadcaster -> a, b
	%a -> con
	%b -> con
	&con -> out

'%' declares a flip-flop: it ignores high pulses and flips on low ones,
sending its new state. '&' declares a conjunction: it remembers the last
pulse of each of its inputs and sends low if they are all high, high
otherwise. Each press of the button sends a low pulse to the broadcaster,
which forwards it to its targets. Names that are targeted but not declared
are sinks: they count pulses and do nothing else.

Pulses are processed in the order they are sent, one press at a time.

The Analyzer handles networks where a terminal sink is fed by a single
conjunction whose inputs each send a high pulse on a fixed period. It
combines these periods into the first press where they all line up.
*/
package pulsesim
