// Package fileutil provides small filesystem helpers shared across the
// conversion pipeline.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ErrTargetExists reports a refused overwrite.
var ErrTargetExists = errors.New("target already exists")

// PrepareTarget makes room for an output file. An existing target is removed
// when clobber is set and refused otherwise.
func PrepareTarget(path string, clobber bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat target: %w", err)
	}
	if !clobber {
		return fmt.Errorf("%w: %s", ErrTargetExists, path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove target: %w", err)
	}
	return nil
}

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
