package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finpulse/internal/model"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1500
)

var (
	// ErrUnauthorized indicates the provider rejected the API key.
	ErrUnauthorized = errors.New("advisor: unauthorized (api key missing or invalid)")
	// ErrRateLimited indicates the provider rate limit was hit.
	ErrRateLimited = errors.New("advisor: rate limited")
	// ErrEmptyCompletion indicates the provider answered without any text.
	ErrEmptyCompletion = errors.New("advisor: empty completion")
)

// Request is a single system + user prompt completion request.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Advisor turns financial data into advice text using a Generator.
type Advisor struct {
	gen         Generator
	temperature float64
	maxTokens   int64
}

// Option customizes an Advisor.
type Option func(*Advisor)

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(a *Advisor) { a.temperature = t }
}

// WithMaxTokens overrides the completion length limit.
func WithMaxTokens(n int64) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// New returns an Advisor backed by gen.
func New(gen Generator, opts ...Option) *Advisor {
	a := &Advisor{
		gen:         gen,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advise composes the prompt for the given data and returns the generated
// advice. Provider failures are returned, never replaced by placeholder text.
func (a *Advisor) Advise(ctx context.Context, firstName string, s model.FinancialSnapshot, recent []model.Transaction) (string, error) {
	text, err := a.gen.Generate(ctx, Request{
		System:      SystemPrompt,
		Prompt:      ComposePrompt(firstName, s, recent),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generating advice: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
