// Package logging configures structured logging for the CLI.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Loggers carry a component attribute
// so pipeline stages, tool clients, and the dispatcher are distinguishable in
// mixed output from parallel jobs.
package logging
