package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/apierr"
)

// OpenAI-compatible endpoints and default models.
const (
	DefaultOpenAIModel   = "gpt-4o"
	DefaultDeepSeekModel = "deepseek-chat"

	deepSeekBaseURL = "https://api.deepseek.com/v1"
)

// chatCompleter is an internal interface for chat completion.
// *openai.Client implements this implicitly.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance check.
var _ Generator = (*OpenAI)(nil)

// OpenAI generates text with an OpenAI-compatible chat completion API.
// The same type serves DeepSeek through its compatible endpoint.
type OpenAI struct {
	settings
	name   string
	envKey string
	client chatCompleter
}

// NewOpenAI creates a generator for the OpenAI API.
func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	return newOpenAICompatible("openai", EnvOpenAIAPIKey, apiKey, "", DefaultOpenAIModel, opts)
}

// NewDeepSeek creates a generator for the DeepSeek API.
func NewDeepSeek(apiKey string, opts ...Option) *OpenAI {
	return newOpenAICompatible("deepseek", EnvDeepSeekAPIKey, apiKey, deepSeekBaseURL, DefaultDeepSeekModel, opts)
}

func newOpenAICompatible(name, envKey, apiKey, baseURL, model string, opts []Option) *OpenAI {
	s := newSettings(apiKey, model, opts)
	if s.baseURL == "" {
		s.baseURL = baseURL
	}
	o := &OpenAI{settings: s, name: name, envKey: envKey, client: s.chat}
	if o.client == nil && apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if o.baseURL != "" {
			cfg.BaseURL = o.baseURL
		}
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
		o.client = openai.NewClientWithConfig(cfg)
	}
	return o
}

// Generate sends prompt as a single user message and returns the reply.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", newFailure("", ErrEmptyPrompt)
	}
	if o.client == nil {
		return "", newFailure(fmt.Sprintf("%s environment variable not set", o.envKey), ErrAPIKeyMissing)
	}

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		TopP:        o.topP,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	log := o.logger.With(zap.String("provider", o.name), zap.String("model", o.model))
	log.Debug("generation request", zap.Int("prompt_chars", len(prompt)))
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		f := classifyOpenAIError(err)
		log.Warn("generation failed", zap.Error(f.Err), zap.Duration("elapsed", time.Since(start)))
		return "", f
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	text := resp.Choices[0].Message.Content
	log.Debug("generation complete", zap.Int("output_chars", len(text)), zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

// classifyOpenAIError maps go-openai errors to a Failure with an apierr cause.
func classifyOpenAIError(err error) *Failure {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		cause := apierr.Classify(apiErr.HTTPStatusCode, msg)
		if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
			cause = fmt.Errorf("%s: %w", msg, apierr.ErrQuotaExceeded)
		}
		return newFailure(msg, cause)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := strings.TrimSpace(string(reqErr.Body))
		if msg == "" && reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return newFailure(msg, apierr.Classify(reqErr.HTTPStatusCode, msg))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newFailure("request timed out", fmt.Errorf("%w: %w", apierr.ErrTimeout, err))
	}
	return newFailure(err.Error(), err)
}
