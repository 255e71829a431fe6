package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocateFirstExistingWins(t *testing.T) {
	present := map[string]bool{
		filepath.Join("/home/u", ".bash_history"): true,
		filepath.Join("/home/u", ".history"):      true,
	}
	exists := func(p string) bool { return present[p] }

	path, err := Locate("/home/u", exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join("/home/u", ".bash_history") {
		t.Errorf("expected .bash_history to win, got %q", path)
	}
}

func TestLocatePrefersZsh(t *testing.T) {
	exists := func(p string) bool { return true }

	path, err := Locate("/home/u", exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join("/home/u", ".zsh_history") {
		t.Errorf("expected .zsh_history to win, got %q", path)
	}
}

func TestLocateNoneFound(t *testing.T) {
	exists := func(p string) bool { return false }

	_, err := Locate("/home/u", exists)
	if err == nil {
		t.Error("expected error when no history file exists")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zsh extended", ": 1700000000:0;ls -la", "ls -la"},
		{"zsh extended with semicolon in command", ": 1700000000:0;echo a;b", "echo a;b"},
		{"plain bash line", "git status", "git status"},
		{"colon prefix without semicolon", ": not extended", ": not extended"},
		{"semicolon without colon prefix", "echo a;b", "echo a;b"},
		{"empty line", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTail(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	got := Tail(lines, 2)
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("Tail(4 lines, 2) = %v", got)
	}

	got = Tail(lines, 10)
	if len(got) != 4 {
		t.Errorf("Tail must never return more than available, got %v", got)
	}
}

func TestReadTailAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bash_history")
	content := "first\nsecond\nthird\nfourth\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	block, err := Read(path, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != "second\nthird\nfourth" {
		t.Errorf("unexpected block: %q", block)
	}
}

func TestReadSanitizesZshLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zsh_history")
	content := ": 1700000001:0;ls -la\n: 1700000002:0;git push\nplain line\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	block, err := Read(path, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != "ls -la\ngit push\nplain line" {
		t.Errorf("unexpected block: %q", block)
	}
}

func TestReadZeroLines(t *testing.T) {
	// n = 0 short-circuits before touching the file.
	block, err := Read(filepath.Join(t.TempDir(), "missing"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block != "" {
		t.Errorf("expected empty block, got %q", block)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing"), 5)
	if err == nil {
		t.Error("expected error for unreadable file")
	}
}

func TestAppendBashFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bash_history")
	if err := os.WriteFile(path, []byte("old\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Append(path, "ls -la", time.Unix(1700000000, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old\nls -la\n" {
		t.Errorf("unexpected file content: %q", string(data))
	}
}

func TestAppendZshExtendedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zsh_history")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}

	if err := Append(path, "git push", time.Unix(1700000000, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ": 1700000000:0;git push\n" {
		t.Errorf("unexpected file content: %q", string(data))
	}
}

func TestAppendMissingFile(t *testing.T) {
	err := Append(filepath.Join(t.TempDir(), "missing"), "ls", time.Now())
	if err == nil {
		t.Error("expected error appending to a missing file")
	}
}

func TestAppendThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".zsh_history")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := Append(path, "make test", time.Now()); err != nil {
		t.Fatal(err)
	}

	block, err := Read(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	if block != "make test" {
		t.Errorf("sanitized read should recover the command, got %q", block)
	}
}
