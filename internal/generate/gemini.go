package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/alnah/go-blueprint/internal/apierr"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-3-pro-preview"

// contentGenerator is the slice of genai.Models used here.
// *genai.Models implements it; tests inject fakes.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Compile-time interface compliance check.
var _ Generator = (*Gemini)(nil)

// Gemini generates text with Google's Gemini API.
// The SDK client is created on the first call, so a missing or invalid
// key surfaces as a *Failure from Generate rather than at construction.
type Gemini struct {
	settings

	mu     sync.Mutex
	models contentGenerator
}

// NewGemini creates a Gemini generator. apiKey may be empty; Generate then
// fails with ErrAPIKeyMissing.
func NewGemini(apiKey string, opts ...Option) *Gemini {
	g := &Gemini{settings: newSettings(apiKey, DefaultGeminiModel, opts)}
	g.models = g.contents
	return g
}

// Generate sends prompt to Gemini and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", newFailure("", ErrEmptyPrompt)
	}

	models, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
		TopP:        genai.Ptr(g.topP),
	}
	if g.thinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(g.thinkingBudget)}
	}

	log := g.logger.With(zap.String("provider", "gemini"), zap.String("model", g.model))
	log.Debug("generation request", zap.Int("prompt_chars", len(prompt)))
	start := time.Now()

	resp, err := models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		f := classifyGeminiError(err)
		log.Warn("generation failed", zap.Error(f.Err), zap.Duration("elapsed", time.Since(start)))
		return "", f
	}

	var text string
	if resp != nil {
		text = resp.Text()
	}
	log.Debug("generation complete", zap.Int("output_chars", len(text)), zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

// client returns the SDK models service, creating the client once.
func (g *Gemini) client(ctx context.Context) (contentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.models != nil {
		return g.models, nil
	}
	if g.apiKey == "" {
		return nil, newFailure(fmt.Sprintf("%s environment variable not set", EnvGeminiAPIKey), ErrAPIKeyMissing)
	}

	cc := &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	if g.baseURL != "" {
		cc.HTTPOptions.BaseURL = g.baseURL
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, newFailure("cannot create Gemini client: "+err.Error(), err)
	}
	g.models = c.Models
	return g.models, nil
}

// classifyGeminiError maps SDK errors to a Failure with an apierr cause.
func classifyGeminiError(err error) *Failure {
	if apiErr, ok := asGeminiAPIError(err); ok {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = apiErr.Status
		}
		cause := apierr.Classify(apiErr.Code, msg)
		// RESOURCE_EXHAUSTED with a quota message is a billing issue, not a burst.
		if apiErr.Status == "RESOURCE_EXHAUSTED" && strings.Contains(strings.ToLower(msg), "quota") {
			cause = fmt.Errorf("%s: %w", msg, apierr.ErrQuotaExceeded)
		}
		return newFailure(msg, cause)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newFailure("request timed out", fmt.Errorf("%w: %w", apierr.ErrTimeout, err))
	}
	return newFailure(err.Error(), err)
}

// asGeminiAPIError extracts a genai.APIError returned by value or pointer.
func asGeminiAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}
