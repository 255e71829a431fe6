// Package main provides the nlcmd CLI entry point.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nlcmd/nlcmd/cli"
	"github.com/nlcmd/nlcmd/config"
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	env, err := cli.DefaultEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := askCmd(env)
	rootCmd.AddCommand(logCmd(env))

	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func askCmd(env cli.Env) *cobra.Command {
	var (
		historyLines int
		yes          bool
		dryRun       bool
		providerName string
		model        string
	)

	cmd := &cobra.Command{
		Use:   "nlcmd [request...]",
		Short: "Turn a natural-language request into a shell command",
		Long: `nlcmd asks an LLM for a single shell command matching your request,
shows it, and runs it through your shell after confirmation.

Recent shell history is sent along for context. Configuration lives in
~/.config/nlcmd/config.json; every suggestion is recorded in a local
invocation log (see "nlcmd log").`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := strings.Join(args, " ")
			if request == "" {
				request = promptForRequest(env)
			}

			ov := config.Overrides{}
			if cmd.Flags().Changed("history-lines") {
				ov.HistoryLines = &historyLines
			}
			if cmd.Flags().Changed("provider") {
				ov.Provider = &providerName
			}
			if cmd.Flags().Changed("model") {
				ov.Model = &model
			}

			opts := cli.Options{Overrides: ov, Yes: yes, DryRun: dryRun}
			return cli.Ask(cmd.Context(), env, request, opts)
		},
	}

	cmd.Flags().IntVarP(&historyLines, "history-lines", "n", config.DefaultHistoryLines, "Number of history lines to include")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation and execute immediately")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be sent to the API without making a request")
	cmd.Flags().StringVarP(&providerName, "provider", "p", "", "LLM provider (anthropic, openai, deepseek, gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model identifier override")

	return cmd
}

func logCmd(env cli.Env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "log",
		Short:         "List recently suggested commands",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ShowLog(cmd.Context(), env, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")

	return cmd
}

// promptForRequest asks for the request interactively when no positional
// words were given. The question goes to stderr so stdout stays clean.
func promptForRequest(env cli.Env) string {
	fmt.Fprint(env.Stderr, "What do you want to do? ")
	line, _ := bufio.NewReader(env.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}
