// Package main hosts the aax2mp3 CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// conversion runs, probe inspections, history queries, dependency checks,
// and configuration scaffolding. It centralizes configuration resolution,
// authcode lookup, and logger setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
