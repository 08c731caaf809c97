package llm

import (
	"context"
	"errors"
)

// ErrBackendUnavailable marks timeouts and HTTP-level failures from the
// generation backend on the non-streaming path. Streaming calls never
// surface it; they degrade to a placeholder chunk instead.
var ErrBackendUnavailable = errors.New("generation backend unavailable")

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions resolves the option list against the defaults shared by
// every backend adapter.
func ApplyOptions(opts []Option) *Options {
	options := &Options{
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Provider defines the contract for any generation backend.
type Provider interface {
	// Generate sends a single prompt and returns the full completion.
	// Transport failures return ErrBackendUnavailable (wrapped).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateStream sends a single prompt and returns the completion as a
	// lazy chunk stream. Adapter-level transport failures are converted
	// into one user-visible placeholder chunk followed by end-of-stream,
	// never a raw transport error.
	GenerateStream(ctx context.Context, prompt string, options ...Option) *Stream
}
