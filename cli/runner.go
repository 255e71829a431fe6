// Command execution for CLI commands.
//
// Information Hiding:
// - Pipeline sequencing hidden (config → history → prompt → inference →
//   interpretation → confirmation → execution)
// - Output formatting hidden
//
// The pipeline is strictly sequential and owns every value it creates for
// exactly one invocation. Ambient process state (home directory, stdio, the
// process executor, the clock) enters through Env so tests can fabricate it.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/nlcmd/nlcmd/config"
	"github.com/nlcmd/nlcmd/history"
	"github.com/nlcmd/nlcmd/llm"
	"github.com/nlcmd/nlcmd/prompt"
	"github.com/nlcmd/nlcmd/reply"
	"github.com/nlcmd/nlcmd/shell"
	"github.com/nlcmd/nlcmd/storage"
)

// logRelPath is the invocation log location relative to the home directory.
const logRelPath = ".config/nlcmd/nlcmd.db"

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	commandColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Options holds CLI execution options for one invocation.
type Options struct {
	Overrides config.Overrides
	Yes       bool
	DryRun    bool
}

// Env groups the ambient process state the pipeline reads.
type Env struct {
	Home        string
	ProgramName string
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Executor    shell.Executor
	Now         func() time.Time
	LogPath     string // empty disables the invocation log

	// NewProvider builds the inference client; nil means llm.New.
	// Tests substitute a scripted provider here.
	NewProvider func(provider, apiKey, model string, maxTokens int) (llm.Provider, error)
}

// DefaultEnv builds the Env for the real process.
func DefaultEnv() (Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, fmt.Errorf("could not determine home directory: %w", err)
	}

	name := "nlcmd"
	if len(os.Args) > 0 && os.Args[0] != "" {
		name = filepath.Base(os.Args[0])
	}

	return Env{
		Home:        home,
		ProgramName: name,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Executor:    shell.FromEnv(),
		Now:         time.Now,
		LogPath:     filepath.Join(home, filepath.FromSlash(logRelPath)),
	}, nil
}

// ExitError carries a specific process exit code to main. An empty Message
// means the failure was already reported on stderr.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Ask runs the full request pipeline for one natural-language request.
func Ask(ctx context.Context, env Env, request string, opts Options) error {
	if strings.TrimSpace(request) == "" {
		return &ExitError{Code: 1, Message: "no prompt provided"}
	}

	settings, err := resolveSettings(env, opts.Overrides)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	// Locate the history file even when zero lines are requested so a
	// missing file still surfaces as a warning.
	histPath := ""
	historyBlock := ""
	if path, err := history.Locate(env.Home, history.FileExists); err != nil {
		fmt.Fprintf(env.Stderr, "Warning: could not read shell history: %v\n", err)
	} else {
		histPath = path
		historyBlock, err = history.Read(path, settings.HistoryLines)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Warning: could not read shell history: %v\n", err)
			historyBlock = ""
		}
	}

	p := prompt.Assemble(settings, historyBlock, env.ProgramName, request)

	if opts.DryRun {
		printDryRun(env.Stdout, settings.Model, p)
		return nil
	}

	// Credential lookup happens only now, when a real call is imminent.
	apiKey, err := config.APIKeyFor(settings.Provider)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	newProvider := env.NewProvider
	if newProvider == nil {
		newProvider = llm.New
	}
	provider, err := newProvider(settings.Provider, apiKey, settings.Model, settings.MaxTokens)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	fmt.Fprint(env.Stderr, "Thinking...")
	replyText, err := provider.Complete(ctx, p.System, p.User)
	fmt.Fprint(env.Stderr, "\r           \r")
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	outcome := reply.Interpret(strings.TrimSpace(replyText))
	if outcome.IsError {
		errorColor.Fprint(env.Stderr, "Error:")
		fmt.Fprintf(env.Stderr, " %s\n", outcome.Reason)
		return &ExitError{Code: 1}
	}

	command := outcome.Command
	headingColor.Fprintln(env.Stdout, "Suggested command:")
	fmt.Fprintf(env.Stdout, "  %s\n\n", commandColor.Sprint(command))

	if !opts.Yes && !confirm(env.Stdin, env.Stdout, "Execute this command?") {
		fmt.Fprintln(env.Stdout, "Cancelled.")
		return nil
	}

	// Record before execution so the attempt survives a failing command.
	if histPath != "" {
		if err := history.Append(histPath, command, env.Now()); err != nil {
			fmt.Fprintf(env.Stderr, "Warning: could not add to history: %v\n", err)
		}
	}

	invLog, invID := recordInvocation(ctx, env, request, command, settings.Model)
	if invLog != nil {
		defer invLog.Close()
	}

	if !opts.Yes {
		fmt.Fprintln(env.Stdout)
	}

	code, err := env.Executor.Run(command)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	if invLog != nil {
		if err := invLog.MarkExecuted(ctx, invID, code); err != nil {
			fmt.Fprintf(env.Stderr, "Warning: could not update invocation log: %v\n", err)
		}
	}

	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// ShowLog prints the most recent invocations, newest first.
func ShowLog(ctx context.Context, env Env, limit int) error {
	if env.LogPath == "" {
		return fmt.Errorf("invocation log disabled")
	}

	invLog, err := storage.OpenLog(env.LogPath)
	if err != nil {
		return err
	}
	defer invLog.Close()

	entries, err := invLog.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(env.Stdout, "No logged invocations.")
		return nil
	}

	for _, inv := range entries {
		status := "-"
		if inv.Executed {
			status = fmt.Sprintf("%d", inv.ExitCode)
		}
		fmt.Fprintf(env.Stdout, "%s  [%s]  %s\n",
			inv.CreatedAt.Format("2006-01-02 15:04"), status, inv.Command)
		fmt.Fprintf(env.Stdout, "    %s\n", inv.Prompt)
	}
	return nil
}

// resolveSettings loads the optional config file and merges it with the
// CLI overrides. File problems warn and degrade to defaults, never fail.
func resolveSettings(env Env, ov config.Overrides) (config.Settings, error) {
	fileCfg, err := config.LoadFile(config.Path(env.Home))
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: %v\n", err)
		fileCfg = config.FileConfig{}
	}
	return config.Resolve(fileCfg, ov)
}

// confirm asks a yes/no question. Only "y" or "yes" (case-insensitive)
// count as affirmative; anything else, including empty input, declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printDryRun(out io.Writer, model string, p prompt.Prompt) {
	headingColor.Fprint(out, "Model:")
	fmt.Fprintf(out, " %s\n\n", model)
	headingColor.Fprintln(out, "System prompt:")
	fmt.Fprintf(out, "%s\n\n", p.System)
	headingColor.Fprint(out, "User prompt:")
	fmt.Fprintf(out, " %s\n", p.User)
}

// recordInvocation logs the suggestion best-effort. Log problems warn and
// never block execution.
func recordInvocation(ctx context.Context, env Env, request, command, model string) (*storage.Log, string) {
	if env.LogPath == "" {
		return nil, ""
	}

	invLog, err := storage.OpenLog(env.LogPath)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: could not open invocation log: %v\n", err)
		return nil, ""
	}

	id, err := invLog.Record(ctx, request, command, model)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: could not record invocation: %v\n", err)
		invLog.Close()
		return nil, ""
	}
	return invLog, id
}
