// Package shell launches an approved command through the user's shell.
//
// Information Hiding:
// - Interpreter selection (the SHELL environment variable)
// - Stdio inheritance so interactive programs inside the command work
// - Exit status extraction

package shell

import (
	"fmt"
	"os"
	"os/exec"
)

// defaultShell is used when the SHELL environment variable is unset.
const defaultShell = "/bin/sh"

// Executor runs a command to completion and reports its exit code. The
// pipeline only needs the command text and the resulting status, so tests
// can substitute a fake.
type Executor interface {
	Run(command string) (int, error)
}

// Interactive executes commands via `<shell> -i -c <command>` with the
// calling process's standard streams inherited.
type Interactive struct {
	Shell string // interpreter path; empty falls back to /bin/sh
}

// FromEnv selects the interpreter from the SHELL environment variable.
func FromEnv() Interactive {
	return Interactive{Shell: os.Getenv("SHELL")}
}

// Run blocks until the launched shell exits. A non-zero exit from the
// command is not an error here; it is returned as the exit code so the
// caller can propagate it. Failure to launch the shell at all is an error.
func (e Interactive) Run(command string) (int, error) {
	interpreter := e.Shell
	if interpreter == "" {
		interpreter = defaultShell
	}

	cmd := exec.Command(interpreter, "-i", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to launch shell %s: %w", interpreter, err)
	}
	return 0, nil
}

// Verify Interactive implements Executor
var _ Executor = Interactive{}
