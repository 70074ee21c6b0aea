package generate

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Export internal seams for testing.

// ContentGeneratorFunc adapts a function to the Gemini models seam.
type ContentGeneratorFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GenerateContent calls f.
func (f ContentGeneratorFunc) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return f(ctx, model, contents, config)
}

// ChatCompleterFunc adapts a function to the chat completion seam.
type ChatCompleterFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

// CreateChatCompletion calls f.
func (f ChatCompleterFunc) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return f(ctx, req)
}

// WithContentGenerator injects a fake Gemini models service.
func WithContentGenerator(c ContentGeneratorFunc) Option {
	return func(s *settings) { s.contents = c }
}

// WithChatCompleter injects a fake chat completion client.
func WithChatCompleter(c ChatCompleterFunc) Option {
	return func(s *settings) { s.chat = c }
}

// ClassifyGeminiError exports classifyGeminiError for testing.
var ClassifyGeminiError = classifyGeminiError

// ClassifyOpenAIError exports classifyOpenAIError for testing.
var ClassifyOpenAIError = classifyOpenAIError

// Model returns the configured model.
func (g *Gemini) Model() string { return g.model }

// Model returns the configured model.
func (o *OpenAI) Model() string { return o.model }

// BaseURL returns the configured endpoint.
func (o *OpenAI) BaseURL() string { return o.baseURL }
