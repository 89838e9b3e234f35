package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"aax2mp3/internal/fileutil"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if fileutil.Exists(path) {
		t.Fatal("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileutil.Exists(path) {
		t.Fatal("existing file reported as missing")
	}
}

func TestPrepareTargetMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp3")
	if err := fileutil.PrepareTarget(path, false); err != nil {
		t.Fatalf("PrepareTarget on missing path: %v", err)
	}
}

func TestPrepareTargetRefusesWithoutClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp3")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := fileutil.PrepareTarget(path, false)
	if !errors.Is(err, fileutil.ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	// The existing file must be untouched.
	data, readErr := os.ReadFile(path)
	if readErr != nil || string(data) != "existing" {
		t.Fatalf("existing file was modified: %q %v", data, readErr)
	}
}

func TestPrepareTargetClobbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp3")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fileutil.PrepareTarget(path, true); err != nil {
		t.Fatalf("PrepareTarget with clobber: %v", err)
	}
	if fileutil.Exists(path) {
		t.Fatal("target should have been removed")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Fatalf("unexpected copy contents: %q %v", data, err)
	}
}
