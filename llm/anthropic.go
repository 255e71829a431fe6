// Anthropic Provider implementation using official anthropic-sdk-go.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for Anthropic Messages API

package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements the Provider interface for Anthropic Claude.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey, model string, maxTokens int) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:    client,
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Model returns the current model.
func (p *AnthropicProvider) Model() string {
	return p.model
}

// Complete sends one Messages API request and returns the first text block.
func (p *AnthropicProvider) Complete(ctx context.Context, system, user string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}

	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		// Surface status and raw body verbatim for diagnosis.
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("API error (%d): %s", apierr.StatusCode, apierr.DumpResponse(true))
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			return variant.Text, nil
		}
	}

	return "", errors.New("no usable reply from model")
}

// Verify AnthropicProvider implements Provider
var _ Provider = (*AnthropicProvider)(nil)
