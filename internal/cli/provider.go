package cli

import (
	"fmt"
	"strings"

	"github.com/alnah/go-blueprint/internal/generate"
)

// Provider name constants.
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

// Provider represents a validated generation provider.
// Zero value means "not set"; use OrDefault before building a client.
type Provider struct {
	name string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Provider{}

// Pre-parsed provider constants for use in code.
var (
	GeminiProvider   = Provider{name: ProviderGemini}
	OpenAIProvider   = Provider{name: ProviderOpenAI}
	DeepSeekProvider = Provider{name: ProviderDeepSeek}
)

// providerNames lists valid providers in help order.
var providerNames = []string{ProviderGemini, ProviderOpenAI, ProviderDeepSeek}

// ParseProvider validates and parses a provider name, case-insensitively.
// Returns ErrInvalidProvider if the name is not recognized.
func ParseProvider(s string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Provider{}, fmt.Errorf("provider cannot be empty: %w", ErrInvalidProvider)
	}
	for _, p := range providerNames {
		if name == p {
			return Provider{name: name}, nil
		}
	}
	return Provider{}, fmt.Errorf("unknown provider %q (use %s): %w",
		s, strings.Join(providerNames, ", "), ErrInvalidProvider)
}

// MustParseProvider parses a provider name, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParseProvider(s string) Provider {
	p, err := ParseProvider(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the provider name. Empty for the zero value.
func (p Provider) String() string {
	return p.name
}

// IsZero returns true if no provider is set.
func (p Provider) IsZero() bool {
	return p.name == ""
}

// IsGemini returns true if this provider is Gemini.
func (p Provider) IsGemini() bool {
	return p.name == ProviderGemini
}

// IsOpenAI returns true if this provider is OpenAI.
func (p Provider) IsOpenAI() bool {
	return p.name == ProviderOpenAI
}

// IsDeepSeek returns true if this provider is DeepSeek.
func (p Provider) IsDeepSeek() bool {
	return p.name == ProviderDeepSeek
}

// OrDefault returns the provider, or GeminiProvider if zero.
func (p Provider) OrDefault() Provider {
	if p.IsZero() {
		return GeminiProvider
	}
	return p
}

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	switch p.OrDefault().name {
	case ProviderOpenAI:
		return generate.DefaultOpenAIModel
	case ProviderDeepSeek:
		return generate.DefaultDeepSeekModel
	default:
		return generate.DefaultGeminiModel
	}
}

// APIKey reads the provider credential through getenv.
// Gemini falls back to API_KEY when GEMINI_API_KEY is unset.
func (p Provider) APIKey(getenv func(string) string) string {
	switch p.OrDefault().name {
	case ProviderOpenAI:
		return getenv(generate.EnvOpenAIAPIKey)
	case ProviderDeepSeek:
		return getenv(generate.EnvDeepSeekAPIKey)
	default:
		if key := getenv(generate.EnvGeminiAPIKey); key != "" {
			return key
		}
		return getenv(generate.EnvAPIKey)
	}
}
