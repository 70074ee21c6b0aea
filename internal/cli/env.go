package cli

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/clipboard"
	"github.com/alnah/go-blueprint/internal/config"
	"github.com/alnah/go-blueprint/internal/generate"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time
	Logger *zap.Logger

	// Factories and collaborators
	ConfigLoader     ConfigLoader
	GeneratorFactory GeneratorFactory
	Clipboard        Clipboard
	ProgramRunner    ProgramRunner
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// GeneratorFactory creates a generation client for a provider.
type GeneratorFactory interface {
	NewGenerator(provider Provider, apiKey string, opts ...generate.Option) generate.Generator
}

// Clipboard copies text, reporting success. Failures are never errors.
type Clipboard interface {
	Copy(text string) bool
}

// ProgramRunner runs an interactive terminal program to completion.
type ProgramRunner interface {
	Run(ctx context.Context, m tea.Model) (tea.Model, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EnvOption {
	return func(e *Env) {
		e.Logger = l
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithGeneratorFactory sets the generator factory.
func WithGeneratorFactory(f GeneratorFactory) EnvOption {
	return func(e *Env) {
		e.GeneratorFactory = f
	}
}

// WithClipboard sets the clipboard.
func WithClipboard(c Clipboard) EnvOption {
	return func(e *Env) {
		e.Clipboard = c
	}
}

// WithProgramRunner sets the interactive program runner.
func WithProgramRunner(r ProgramRunner) EnvOption {
	return func(e *Env) {
		e.ProgramRunner = r
	}
}

// DefaultEnv returns an Env with production defaults.
// The logger is a no-op until the root command installs one.
func DefaultEnv() *Env {
	logger := zap.NewNop()
	return &Env{
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		Now:              time.Now,
		Logger:           logger,
		ConfigLoader:     &defaultConfigLoader{},
		GeneratorFactory: &defaultGeneratorFactory{},
		Clipboard:        clipboard.New(logger),
		ProgramRunner:    &defaultProgramRunner{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// SetLogger replaces the logger and rebinds the default clipboard to it.
func (e *Env) SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	e.Logger = l
	if _, ok := e.Clipboard.(*clipboard.Copier); ok {
		e.Clipboard = clipboard.New(l)
	}
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultGeneratorFactory implements GeneratorFactory with the SDK-backed providers.
type defaultGeneratorFactory struct{}

func (defaultGeneratorFactory) NewGenerator(provider Provider, apiKey string, opts ...generate.Option) generate.Generator {
	switch {
	case provider.IsOpenAI():
		return generate.NewOpenAI(apiKey, opts...)
	case provider.IsDeepSeek():
		return generate.NewDeepSeek(apiKey, opts...)
	default:
		return generate.NewGemini(apiKey, opts...)
	}
}

// defaultProgramRunner runs a bubbletea program on the alternate screen.
type defaultProgramRunner struct{}

func (defaultProgramRunner) Run(ctx context.Context, m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
}

// Compile-time interface verification.
var (
	_ ConfigLoader     = (*defaultConfigLoader)(nil)
	_ GeneratorFactory = (*defaultGeneratorFactory)(nil)
	_ Clipboard        = (*clipboard.Copier)(nil)
	_ ProgramRunner    = (*defaultProgramRunner)(nil)
)
