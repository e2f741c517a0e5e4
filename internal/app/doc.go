// Package app contains the pulsesim application logic: run configuration,
// logging, and the run lifecycle that loads a network, simulates it and
// reports the results. It is decoupled from the command line.
//
package app
