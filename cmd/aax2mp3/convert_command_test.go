package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aax2mp3/internal/authcode"
)

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.aax")
	if err := os.WriteFile(path, []byte("encrypted"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertRequiresAuthcode(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "convert", writeInput(t))
	if !errors.Is(err, authcode.ErrNotFound) {
		t.Fatalf("expected missing-authcode error, got %v", err)
	}
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "convert", "-a", "1a2b3c4d", "-f", "wav", writeInput(t))
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestConvertRequiresInputs(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "convert")
	if err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestAuthcodeDotfileSatisfiesResolution(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, `
[tools]
ffprobe = "aax2mp3-test-missing-ffprobe"
`)
	input := writeInput(t)

	// Without any source the probe aborts during authcode resolution.
	_, err := runCLI(t, "--config", path, "probe", input)
	if !errors.Is(err, authcode.ErrNotFound) {
		t.Fatalf("expected missing-authcode error, got %v", err)
	}

	// With a dotfile present resolution succeeds and the failure moves on to
	// the unavailable prober binary.
	if err := os.WriteFile(".authcode", []byte("feedbeef\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = runCLI(t, "--config", path, "probe", input)
	if err == nil || errors.Is(err, authcode.ErrNotFound) {
		t.Fatalf("expected prober failure after dotfile resolution, got %v", err)
	}
}

