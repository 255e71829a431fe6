// Package config resolves the effective settings for a single invocation.
//
// Settings come from three layers, merged per field:
// - CLI-supplied overrides (strongest)
// - the optional JSON config file at ~/.config/nlcmd/config.json
// - compiled-in defaults (weakest)
//
// A missing config file is silent. An unreadable or unparseable file is
// reported by the caller as a warning and degrades to defaults; resolution
// itself never fails for file problems.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Compiled-in defaults. Every Settings field has a concrete value after
// Resolve, whatever the file or the flags omit.
const (
	DefaultProvider     = "anthropic"
	DefaultMaxTokens    = 1024
	DefaultHistoryLines = 100
)

// DefaultSystemPrompt is the built-in system prompt template. The "{}" marker
// is replaced with the invoking program's name so the model can be told not to
// recommend re-invoking the tool the user is already running.
const DefaultSystemPrompt = `You are a command-line assistant that outputs ONLY shell commands.

RULES:
1. Output ONLY a single shell command - nothing else
2. NO explanations, NO markdown, NO code blocks, NO backticks, NO formatting
3. If you cannot help, output: echo "Error: <reason>"
4. Never suggest running "{}" - the user is already running that to talk to you

Your entire response must be a valid shell command that can be executed directly.`

// configRelPath is the config file location relative to the home directory.
const configRelPath = ".config/nlcmd/config.json"

// Settings holds the effective configuration for one invocation.
type Settings struct {
	Provider           string
	Model              string
	MaxTokens          int
	HistoryLines       int
	SystemPrompt       string
	SystemPromptSuffix string // empty means no suffix configured
}

// FileConfig mirrors the JSON config file. Pointer fields distinguish
// "omitted" from zero values so precedence works per field.
type FileConfig struct {
	Provider           *string `json:"provider"`
	Model              *string `json:"model"`
	MaxTokens          *int    `json:"max_tokens"`
	HistoryLines       *int    `json:"history_lines"`
	SystemPrompt       *string `json:"system_prompt"`
	SystemPromptSuffix *string `json:"system_prompt_suffix"`
}

// Overrides carries CLI-supplied values. Nil fields were not supplied.
type Overrides struct {
	Provider     *string
	Model        *string
	HistoryLines *int
}

// providerInfo holds per-provider defaults and credential lookup.
type providerInfo struct {
	defaultModel string
	apiKeyEnv    string
}

// Supported providers and their configuration.
var providers = map[string]providerInfo{
	"anthropic": {"claude-haiku-4-5-20251001", "ANTHROPIC_API_KEY"},
	"openai":    {"gpt-4o-mini", "OPENAI_API_KEY"},
	"deepseek":  {"deepseek-chat", "DEEPSEEK_API_KEY"},
	"gemini":    {"gemini-2.5-flash", "GEMINI_API_KEY"},
}

// Provider aliases map to canonical names.
var providerAliases = map[string]string{
	"claude": "anthropic",
	"gpt":    "openai",
	"google": "gemini",
}

// Path returns the config file path under the given home directory.
func Path(home string) string {
	return filepath.Join(home, filepath.FromSlash(configRelPath))
}

// LoadFile reads the config file at path. A missing file yields a zero
// FileConfig and no error; read and parse failures are returned so the caller
// can warn and continue with defaults.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("could not parse config file: %w", err)
	}
	return cfg, nil
}

// Resolve merges overrides, file values and defaults into effective settings.
// Precedence is CLI > file > default, evaluated independently per field.
// Returns an error only for an unknown provider name.
func Resolve(file FileConfig, ov Overrides) (Settings, error) {
	s := Settings{
		Provider:     DefaultProvider,
		MaxTokens:    DefaultMaxTokens,
		HistoryLines: DefaultHistoryLines,
		SystemPrompt: DefaultSystemPrompt,
	}

	if file.Provider != nil {
		s.Provider = *file.Provider
	}
	if file.Model != nil {
		s.Model = *file.Model
	}
	if file.MaxTokens != nil {
		s.MaxTokens = *file.MaxTokens
	}
	if file.HistoryLines != nil {
		s.HistoryLines = *file.HistoryLines
	}
	if file.SystemPrompt != nil {
		s.SystemPrompt = *file.SystemPrompt
	}
	if file.SystemPromptSuffix != nil {
		s.SystemPromptSuffix = *file.SystemPromptSuffix
	}

	if ov.Provider != nil {
		s.Provider = *ov.Provider
	}
	if ov.Model != nil {
		s.Model = *ov.Model
	}
	if ov.HistoryLines != nil {
		s.HistoryLines = *ov.HistoryLines
	}

	s.Provider = normalizeProvider(s.Provider)
	info, ok := providers[s.Provider]
	if !ok {
		return Settings{}, fmt.Errorf("unknown provider: %q", s.Provider)
	}
	if s.Model == "" {
		s.Model = info.defaultModel
	}

	return s, nil
}

// APIKeyFor returns the API key for a provider from environment variables.
// Callers check the key only when a real request is imminent, so --dry-run
// works without credentials.
func APIKeyFor(provider string) (string, error) {
	provider = normalizeProvider(provider)

	info, ok := providers[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider: %q", provider)
	}

	key := os.Getenv(info.apiKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", info.apiKeyEnv)
	}
	return key, nil
}

// SupportedProviders returns the list of supported provider names.
func SupportedProviders() []string {
	result := make([]string, 0, len(providers))
	for name := range providers {
		result = append(result, name)
	}
	return result
}

// normalizeProvider converts provider aliases to canonical names.
func normalizeProvider(provider string) string {
	provider = strings.ToLower(provider)
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}
