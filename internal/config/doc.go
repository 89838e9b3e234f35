// Package config loads, normalizes, and validates aax2mp3 configuration.
//
// It supplies repository defaults, expands tilde paths, reads the TOML config
// file, and validates every knob before the CLI acts on it. Config values sit
// at the bottom of the flag > environment > dotfile > config resolution
// chain; command-line flags always win.
package config
