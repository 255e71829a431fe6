// Package reply interprets the model's completion.
//
// The system prompt instructs the model to answer with exactly
// `echo "Error: <reason>"` when it cannot produce a command. Classification
// here is a byte-exact prefix/suffix match against the trimmed reply; a reply
// with trailing punctuation or other variance deliberately falls through to
// being treated as a literal shell command.

package reply

import "strings"

// Sigil delimiters for a model-declared error.
const (
	errorPrefix = `echo "Error: `
	errorSuffix = `"`
)

// Outcome classifies a model reply as either a command to run or a
// model-declared error. Exactly one branch is set.
type Outcome struct {
	Command string
	Reason  string
	IsError bool
}

// Interpret classifies the trimmed model reply. A reply exactly shaped
// `echo "Error: <reason>"` yields an error outcome carrying the reason;
// anything else is a command, verbatim, with no further validation.
func Interpret(trimmed string) Outcome {
	if inner, ok := strings.CutPrefix(trimmed, errorPrefix); ok {
		if reason, ok := strings.CutSuffix(inner, errorSuffix); ok {
			return Outcome{Reason: reason, IsError: true}
		}
	}
	return Outcome{Command: trimmed}
}
