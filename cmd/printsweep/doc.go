// Package printsweep provides the command-line interface for printsweep.
// It configures subcommands (strip, check, interactive, history, etc.),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/printsweep/printsweep/cmd/printsweep"
//	func main() { printsweep.Execute() }
package printsweep
