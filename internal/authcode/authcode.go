// Package authcode resolves the Audible activation bytes required to decrypt
// AAX containers.
//
// Sources are consulted in priority order: the explicit --authcode flag, the
// AUTHCODE environment variable, a .authcode dotfile in the working
// directory, a .authcode dotfile in the home directory, and finally the
// config file. The first non-empty value wins.
package authcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvVar is the environment variable consulted after the explicit flag.
const EnvVar = "AUTHCODE"

// DotfileName is the per-directory fallback file holding a bare authcode.
const DotfileName = ".authcode"

// ErrNotFound reports that no source yielded an authcode.
var ErrNotFound = errors.New(
	`authcode not found in ".authcode", "~/.authcode", "$AUTHCODE", the config file, or the command line`)

// Resolve returns the first non-empty authcode from the priority-ordered
// sources, along with the name of the source that supplied it.
func Resolve(explicit, configValue string) (string, string, error) {
	if code := strings.TrimSpace(explicit); code != "" {
		return code, "flag", nil
	}
	if code := strings.TrimSpace(os.Getenv(EnvVar)); code != "" {
		return code, "env", nil
	}
	if code := readDotfile(DotfileName); code != "" {
		return code, "dotfile", nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		if code := readDotfile(filepath.Join(home, DotfileName)); code != "" {
			return code, "home-dotfile", nil
		}
	}
	if code := strings.TrimSpace(configValue); code != "" {
		return code, "config", nil
	}
	return "", "", ErrNotFound
}

func readDotfile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Redact masks an authcode for log output, keeping only the last two hex
// characters.
func Redact(code string) string {
	if len(code) <= 2 {
		return strings.Repeat("*", len(code))
	}
	return fmt.Sprintf("%s%s", strings.Repeat("*", len(code)-2), code[len(code)-2:])
}
