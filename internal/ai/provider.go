package ai

import (
	"context"
	"fmt"
)

// Provider is a text generator that may hold network resources.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// New returns nil with no error when no provider or key is configured, so
// callers fall back to the unavailable message.
func New(ctx context.Context, opts Options) (Provider, error) {
	if opts.Provider == "" || opts.APIKey == "" {
		return nil, nil
	}
	switch opts.Provider {
	case "gemini":
		g, err := NewGemini(ctx, opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		o, err := NewOpenAI(opts.APIKey, opts.BaseURL, opts.Model)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", opts.Provider)
	}
}
