package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/config"
	"github.com/alnah/go-blueprint/internal/format"
	"github.com/alnah/go-blueprint/internal/generate"
	"github.com/alnah/go-blueprint/internal/session"
)

// generateOptions holds the non-field flags of the generate command.
type generateOptions struct {
	provider string
	model    string
	style    string
	output   string
	save     bool
	width    int
	sampling samplingOptions
}

// GenerateCmd creates the generate command (send the prompt and render the result).
// The env parameter provides injectable dependencies for testing.
func GenerateCmd(env *Env) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a design framework from the prompt",
		Long: `Fill the design prompt template, send it to a generative-AI provider,
and render the returned framework in the terminal.

Gemini is used by default (GEMINI_API_KEY, or API_KEY). Use --provider openai
(OPENAI_API_KEY) or --provider deepseek (DEEPSEEK_API_KEY) to switch.

Output styles:
  blocks   headings, bold lines and paragraphs styled for the terminal (default)
  plain    the same blocks without colors
  glamour  full Markdown rendering
  raw      the text exactly as returned`,
		Example: `  blueprint generate --app-type "Fintech App" --vibe-style Brutalist
  blueprint generate --values fields.yaml --provider openai --style glamour
  blueprint generate --set APP_TYPE=CRM -o crm-design.md
  blueprint generate --app-type CRM --save --temperature 0.4`,
		Args: cobra.NoArgs,
	}

	ff := bindFieldFlags(cmd)
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Generation provider: gemini, openai, deepseek (default: config or gemini)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model name (default: provider default)")
	cmd.Flags().StringVarP(&opts.style, "style", "s", StyleBlocks, "Output style: blocks, plain, glamour, raw")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the raw result to a file instead of printing it")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Write the raw result to a timestamped file in output-dir (or the current directory)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Wrap rendered output at this width (0: no wrapping)")
	bindSamplingFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sampling, err := readSamplingFlags(cmd.Flags())
		if err != nil {
			return err
		}
		opts.sampling = sampling
		return runGenerate(cmd, env, ff, opts)
	}
	return cmd
}

// runGenerate executes the generate command.
// Validation order: provider -> sampling -> style -> template -> fields -> output path.
func runGenerate(cmd *cobra.Command, env *Env, ff *fieldFlags, opts generateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// === VALIDATION (fail-fast) ===

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	provider, model, err := resolveProvider(opts.provider, opts.model, cfg)
	if err != nil {
		return err
	}

	if err := opts.sampling.validate(); err != nil {
		return err
	}

	style, err := parseStyle(opts.style)
	if err != nil {
		return err
	}

	tmpl, err := ff.resolveTemplate(cfg)
	if err != nil {
		return err
	}
	values, err := ff.resolveValues(cmd)
	if err != nil {
		return err
	}

	var output string
	if opts.output != "" || opts.save {
		output = config.ResolveOutputPath(opts.output, cfg.OutputDir, defaultOutputFilename(env.Now))
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("output file already exists: %s: %w", output, ErrOutputExists)
		}
		warnNonMarkdownExtension(env.Stderr, output)
	}

	// === GENERATE ===

	gen := env.GeneratorFactory.NewGenerator(provider, provider.APIKey(env.Getenv),
		opts.sampling.generatorOptions(model, env.Logger)...)
	ctl := session.New(tmpl, session.WithValues(values), session.WithLogger(env.Logger))

	fmt.Fprintf(env.Stderr, "Generating with %s (%s, %s filled)...\n",
		provider, model, format.Count(len(values.Filled()), "field"))
	start := env.Now()

	state, err := ctl.Generate(ctx, gen)
	if err != nil {
		return err
	}
	elapsed := env.Now().Sub(start)

	if state.Phase == session.Failed {
		env.Logger.Debug("generation failed", zap.String("provider", provider.String()), zap.Duration("elapsed", elapsed))
		return &generate.Failure{Message: state.Err, Err: state.Cause}
	}

	// === OUTPUT ===

	if output != "" {
		if err := writeFileAtomic(output, state.Output); err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Done in %s: %s (%s)\n",
			format.DurationHuman(elapsed), output, format.Size(int64(len(state.Output))))
		return nil
	}

	rendered, err := renderOutput(state.Output, style, opts.width)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Done in %s\n\n", format.DurationHuman(elapsed))
	fmt.Fprintln(env.Stdout, rendered)
	return nil
}

// defaultOutputFilename names a --save file after the current time.
func defaultOutputFilename(now func() time.Time) string {
	return fmt.Sprintf("blueprint_%s.md", now().Format("20060102_150405"))
}

// resolveProvider picks the provider and model.
// Flags win over config; a configured model only applies to the configured provider.
func resolveProvider(providerFlag, modelFlag string, cfg config.Config) (Provider, string, error) {
	name := providerFlag
	if name == "" {
		name = cfg.Provider
	}

	var provider Provider
	if name != "" {
		p, err := ParseProvider(name)
		if err != nil {
			return Provider{}, "", err
		}
		provider = p
	}
	provider = provider.OrDefault()

	model := modelFlag
	if model == "" && cfg.Model != "" && sameProvider(provider, cfg.Provider) {
		model = cfg.Model
	}
	if model == "" {
		model = provider.DefaultModel()
	}
	return provider, model, nil
}

// sameProvider reports whether configured names the same provider as p.
// An empty configured provider means the default.
func sameProvider(p Provider, configured string) bool {
	if configured == "" {
		return p == GeminiProvider
	}
	c, err := ParseProvider(configured)
	return err == nil && c == p
}
