// Package generate sends finished prompts to a generative-AI provider.
//
// Every provider error leaves this package as a *Failure carrying a
// human-readable message; the underlying cause is classified into
// internal/apierr sentinels and reachable through errors.Is.
package generate

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Generator turns a prompt into generated text.
type Generator interface {
	// Generate returns the generated text, or a *Failure.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Environment variables holding provider credentials.
const (
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvAPIKey         = "API_KEY"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvDeepSeekAPIKey = "DEEPSEEK_API_KEY"
)

// DefaultFailureMessage is shown when a failure carries no message.
const DefaultFailureMessage = "An error occurred during generation."

// Failure is the single error kind surfaced by a Generator.
type Failure struct {
	// Message is safe to show to the user verbatim.
	Message string
	// Err is the classified cause, if any.
	Err error
}

// Error returns the user-facing message.
func (f *Failure) Error() string {
	if f.Message == "" {
		return DefaultFailureMessage
	}
	return f.Message
}

// Unwrap returns the classified cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// newFailure builds a Failure from a provider message and classified cause.
func newFailure(msg string, cause error) *Failure {
	msg = strings.TrimSpace(msg)
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Failure{Message: msg, Err: cause}
}

// MessageOf extracts the user-facing message of err.
// A *Failure yields its Message; any other error its Error() text; an
// empty result falls back to DefaultFailureMessage. nil yields "".
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return DefaultFailureMessage
}

// ---------------------------------------------------------------------------
// Shared provider settings
// ---------------------------------------------------------------------------

// Sampling defaults shared by every provider.
const (
	defaultTemperature    = 0.8
	defaultTopP           = 0.95
	defaultThinkingBudget = 4000

	// HTTP timeout for a single generation request.
	defaultHTTPTimeout = 10 * time.Minute
)

// settings holds configuration common to all providers.
type settings struct {
	apiKey         string
	model          string
	baseURL        string
	temperature    float32
	topP           float32
	thinkingBudget int32
	logger         *zap.Logger

	// Test seams.
	contents contentGenerator
	chat     chatCompleter
}

// Option configures a provider.
type Option func(*settings)

// WithModel sets the model name. Empty keeps the provider default.
func WithModel(model string) Option {
	return func(s *settings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(s *settings) {
		if t >= 0 {
			s.temperature = t
		}
	}
}

// WithTopP sets nucleus sampling probability mass.
func WithTopP(p float32) Option {
	return func(s *settings) {
		if p > 0 && p <= 1 {
			s.topP = p
		}
	}
}

// WithThinkingBudget sets the reasoning token budget (Gemini only).
// Zero disables thinking.
func WithThinkingBudget(tokens int32) Option {
	return func(s *settings) {
		if tokens >= 0 {
			s.thinkingBudget = tokens
		}
	}
}

// WithBaseURL overrides the API endpoint (for proxies or tests).
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(apiKey, model string, opts []Option) settings {
	s := settings{
		apiKey:         apiKey,
		model:          model,
		temperature:    defaultTemperature,
		topP:           defaultTopP,
		thinkingBudget: defaultThinkingBudget,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
