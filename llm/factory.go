// LLM Provider Factory - creates a provider from its resolved configuration.

package llm

import "fmt"

// New creates the provider with the given canonical name. The API key is
// passed in by the caller, which looks it up only when a real request is
// about to be made.
func New(provider, apiKey, model string, maxTokens int) (Provider, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicProvider(apiKey, model, maxTokens), nil
	case "openai":
		return NewOpenAIProvider(apiKey, model, maxTokens), nil
	case "deepseek":
		return NewDeepSeekProvider(apiKey, model, maxTokens), nil
	case "gemini":
		return NewGeminiProvider(apiKey, model, maxTokens), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", provider)
	}
}
