// Package cli parses command-line arguments, validates user input, and
// handles process-level concerns like exit codes. It translates CLI flags and
// the optional run configuration file into an app.Config.
//
package cli
