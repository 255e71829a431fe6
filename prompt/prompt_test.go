package prompt

import (
	"strings"
	"testing"

	"github.com/nlcmd/nlcmd/config"
)

func TestAssembleSubstitutesProgramName(t *testing.T) {
	s := config.Settings{SystemPrompt: `Never suggest running "{}" again`}

	p := Assemble(s, "", "nlcmd", "list files")
	if !strings.Contains(p.System, `Never suggest running "nlcmd" again`) {
		t.Errorf("program name not substituted: %q", p.System)
	}
	if strings.Contains(p.System, "{}") {
		t.Error("marker must not survive substitution")
	}
}

func TestAssembleAppendsHistory(t *testing.T) {
	s := config.Settings{SystemPrompt: "base"}

	p := Assemble(s, "ls\ncd /tmp", "nlcmd", "req")
	want := "base\n\nThe user's recent shell history:\nls\ncd /tmp"
	if p.System != want {
		t.Errorf("system = %q, want %q", p.System, want)
	}
}

func TestAssembleWithSuffix(t *testing.T) {
	s := config.Settings{SystemPrompt: "base", SystemPromptSuffix: "prefer long flags"}

	p := Assemble(s, "ls", "nlcmd", "req")
	want := "base\n\nThe user's recent shell history:\nls\n\nprefer long flags"
	if p.System != want {
		t.Errorf("system = %q, want %q", p.System, want)
	}
}

func TestAssembleUserVerbatim(t *testing.T) {
	s := config.Settings{SystemPrompt: "base"}

	req := `  find all "*.go" files; sort them  `
	p := Assemble(s, "", "nlcmd", req)
	if p.User != req {
		t.Errorf("user request must pass through verbatim, got %q", p.User)
	}
}

func TestAssembleDefaultTemplate(t *testing.T) {
	s := config.Settings{SystemPrompt: config.DefaultSystemPrompt}

	p := Assemble(s, "", "howto", "req")
	if !strings.Contains(p.System, `Never suggest running "howto"`) {
		t.Errorf("default template should carry the invoking name: %q", p.System)
	}
}
