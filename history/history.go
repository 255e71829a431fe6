// Package history reads and appends the user's shell history.
//
// The harvester locates the first existing history file among the
// conventional candidates under the home directory, takes a bounded tail of
// its lines and strips zsh extended-history prefixes so the model sees plain
// command text. The writer appends an approved command back to the same file
// in that shell's native format.

package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Candidate history filenames under the home directory, in lookup order.
// First existing file wins.
var candidates = []string{".zsh_history", ".bash_history", ".history"}

// FileExists probes the real filesystem. Tests pass their own probe to
// Locate to simulate arbitrary presence or absence.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Locate returns the first existing history file under home, using the given
// existence probe. Returns a descriptive error when none exists; callers
// treat that as recoverable and continue with empty history.
func Locate(home string, exists func(string) bool) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(home, name)
		if exists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("could not find shell history file in %s", home)
}

// Read returns the last min(n, total) commands of the history file at path,
// oldest first, sanitized and joined with newlines. n <= 0 yields an empty
// block without reading the file.
func Read(path string, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read shell history: %w", err)
	}

	lines := splitLines(string(data))
	tail := Tail(lines, n)

	cleaned := make([]string, len(tail))
	for i, line := range tail {
		cleaned[i] = Sanitize(line)
	}
	return strings.Join(cleaned, "\n"), nil
}

// Tail returns the last n elements of lines, preserving order.
func Tail(lines []string, n int) []string {
	if n >= len(lines) {
		return lines
	}
	return lines[len(lines)-n:]
}

// Sanitize strips the zsh extended-history prefix from a line. The prefix is
// a leading ": " marker followed by a timestamp and flag segment terminated
// by ";" (for example ": 1700000000:0;ls -la"). Lines without the prefix
// pass through unchanged.
func Sanitize(line string) string {
	if strings.HasPrefix(line, ": ") && strings.Contains(line, ";") {
		if _, cmd, ok := strings.Cut(line, ";"); ok {
			return cmd
		}
	}
	return line
}

// Append records command at the end of the history file at path. The zsh
// file gets the extended format with the current epoch seconds; the others
// get the bare command. The file is opened, written and closed within this
// call, append-only.
func Append(path, command string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("could not open shell history for append: %w", err)
	}
	defer f.Close()

	var entry string
	if strings.Contains(filepath.Base(path), "zsh_history") {
		entry = fmt.Sprintf(": %d:0;%s\n", now.Unix(), command)
	} else {
		entry = command + "\n"
	}

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("could not append to shell history: %w", err)
	}
	return nil
}

// splitLines splits on newlines the way a shell history is laid out: a
// trailing newline does not produce a final empty command.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
