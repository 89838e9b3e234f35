package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// runCLI executes the root command with the given arguments and returns the
// captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// chdir changes into dir for the duration of the test, restoring the
// original working directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

// isolateEnv points HOME at an empty directory and clears the authcode
// environment so tests never pick up the developer's real configuration.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUTHCODE", "")
	chdir(t, t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootHelpListsCommands(t *testing.T) {
	isolateEnv(t)
	out, err := runCLI(t)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	for _, name := range []string{"convert", "probe", "history", "deps", "config"} {
		if !bytes.Contains([]byte(out), []byte(name)) {
			t.Errorf("help output missing %q", name)
		}
	}
}
