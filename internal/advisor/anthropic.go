package advisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicGenerator generates text with the Anthropic Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	model  string
}

// NewAnthropicGenerator creates a generator for the given configuration.
// Returns nil if no API key is set.
func NewAnthropicGenerator(cfg ChatConfig) *AnthropicGenerator {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicGenerator{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Generate implements Generator.
func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System:      []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return "", ErrUnauthorized
			case http.StatusTooManyRequests:
				return "", ErrRateLimited
			}
		}
		return "", fmt.Errorf("advisor: anthropic request: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyCompletion
	}
	return b.String(), nil
}

// compile-time interface checks
var (
	_ Generator = (*ChatClient)(nil)
	_ Generator = (*AnthropicGenerator)(nil)
)
