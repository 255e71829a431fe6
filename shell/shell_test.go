package shell

import (
	"runtime"
	"testing"
)

func TestRunExitCodeZero(t *testing.T) {
	skipWithoutPosixShell(t)

	code, err := Interactive{Shell: "/bin/sh"}.Run("true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	skipWithoutPosixShell(t)

	code, err := Interactive{Shell: "/bin/sh"}.Run("exit 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
}

func TestRunMissingInterpreter(t *testing.T) {
	_, err := Interactive{Shell: "/nonexistent/shell"}.Run("true")
	if err == nil {
		t.Error("expected launch error for missing interpreter")
	}
}

func skipWithoutPosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}
