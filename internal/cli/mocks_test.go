package cli

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alnah/go-blueprint/internal/config"
	"github.com/alnah/go-blueprint/internal/generate"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock GeneratorFactory + Generator
// ---------------------------------------------------------------------------

type generatorCall struct {
	Provider Provider
	APIKey   string
	Opts     []generate.Option
}

type mockGeneratorFactory struct {
	NewGeneratorFunc func(provider Provider, apiKey string, opts ...generate.Option) generate.Generator

	mu            sync.Mutex
	calls         []generatorCall
	mockGenerator *mockGenerator
}

func (m *mockGeneratorFactory) NewGenerator(provider Provider, apiKey string, opts ...generate.Option) generate.Generator {
	m.mu.Lock()
	m.calls = append(m.calls, generatorCall{Provider: provider, APIKey: apiKey, Opts: opts})
	m.mu.Unlock()

	if m.NewGeneratorFunc != nil {
		return m.NewGeneratorFunc(provider, apiKey, opts...)
	}
	if m.mockGenerator != nil {
		return m.mockGenerator
	}
	return &mockGenerator{}
}

func (m *mockGeneratorFactory) Calls() []generatorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generatorCall(nil), m.calls...)
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "## Layout\n**Grid**\nUse an 8px grid.", nil
}

func (m *mockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// ---------------------------------------------------------------------------
// Mock Clipboard
// ---------------------------------------------------------------------------

type mockClipboard struct {
	Fail bool

	mu     sync.Mutex
	copied []string
}

func (m *mockClipboard) Copy(text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.copied = append(m.copied, text)
	return !m.Fail
}

func (m *mockClipboard) Copied() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.copied...)
}

// ---------------------------------------------------------------------------
// Mock ProgramRunner
// ---------------------------------------------------------------------------

type mockProgramRunner struct {
	RunFunc func(ctx context.Context, m tea.Model) (tea.Model, error)

	mu     sync.Mutex
	models []tea.Model
}

func (m *mockProgramRunner) Run(ctx context.Context, model tea.Model) (tea.Model, error) {
	m.mu.Lock()
	m.models = append(m.models, model)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, model)
	}
	return model, nil
}

func (m *mockProgramRunner) Models() []tea.Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tea.Model(nil), m.models...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader       = (*mockConfigLoader)(nil)
	_ GeneratorFactory   = (*mockGeneratorFactory)(nil)
	_ generate.Generator = (*mockGenerator)(nil)
	_ Clipboard          = (*mockClipboard)(nil)
	_ ProgramRunner      = (*mockProgramRunner)(nil)
)
