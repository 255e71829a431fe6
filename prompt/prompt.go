// Package prompt assembles the payload sent to the model.
package prompt

import (
	"strings"

	"github.com/nlcmd/nlcmd/config"
)

// historyIntro separates the instruction block from the harvested history.
const historyIntro = "\n\nThe user's recent shell history:\n"

// Prompt is the exact payload for one inference request: the instruction
// block and the user's free-text request, verbatim.
type Prompt struct {
	System string
	User   string
}

// Assemble builds the prompt from the effective settings, the sanitized
// history block, the name the program was invoked as, and the user's request.
// Pure: no I/O, no truncation, no escaping. The "{}" marker in the system
// prompt template is replaced with programName so the model is told not to
// recommend re-invoking the tool itself.
func Assemble(s config.Settings, historyBlock, programName, request string) Prompt {
	system := strings.ReplaceAll(s.SystemPrompt, "{}", programName)
	system += historyIntro + historyBlock
	if s.SystemPromptSuffix != "" {
		system += "\n\n" + s.SystemPromptSuffix
	}

	return Prompt{System: system, User: request}
}
