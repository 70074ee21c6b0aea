package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/session"
	"github.com/alnah/go-blueprint/internal/tui"
)

// formOptions holds the non-field flags of the form command.
type formOptions struct {
	provider string
	model    string
	sampling samplingOptions
}

// FormCmd creates the form command (interactive editor with live preview).
// The env parameter provides injectable dependencies for testing.
func FormCmd(env *Env) *cobra.Command {
	var opts formOptions

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Edit fields interactively and generate from a terminal form",
		Long: `Open an interactive form with one input per template field.

The prompt preview updates as you type. Press ctrl+g to generate, ctrl+y to
copy the prompt, tab/shift+tab to move between fields and esc to quit.
Field flags, --set and --values prefill the form.`,
		Example: `  blueprint form
  blueprint form --app-type "Fintech App" --provider deepseek`,
		Args: cobra.NoArgs,
	}

	ff := bindFieldFlags(cmd)
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Generation provider: gemini, openai, deepseek (default: config or gemini)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model name (default: provider default)")
	bindSamplingFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sampling, err := readSamplingFlags(cmd.Flags())
		if err != nil {
			return err
		}
		opts.sampling = sampling
		return runForm(cmd, env, ff, opts)
	}
	return cmd
}

// runForm executes the form command.
func runForm(cmd *cobra.Command, env *Env, ff *fieldFlags, opts formOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

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
	tmpl, err := ff.resolveTemplate(cfg)
	if err != nil {
		return err
	}
	values, err := ff.resolveValues(cmd)
	if err != nil {
		return err
	}

	gen := env.GeneratorFactory.NewGenerator(provider, provider.APIKey(env.Getenv),
		opts.sampling.generatorOptions(model, env.Logger)...)
	ctl := session.New(tmpl, session.WithValues(values), session.WithLogger(env.Logger))

	m := tui.New(ctl, gen,
		tui.WithContext(ctx),
		tui.WithClipboard(env.Clipboard),
		tui.WithLogger(env.Logger),
		tui.WithNow(env.Now),
	)

	env.Logger.Debug("starting form", zap.String("provider", provider.String()), zap.String("model", model))
	if _, err := env.ProgramRunner.Run(ctx, m); err != nil {
		return fmt.Errorf("form: %w", err)
	}

	// Leave the last prompt on the normal screen for scrollback.
	if prompt := ctl.Prompt(); prompt != "" {
		fmt.Fprintln(env.Stdout, prompt)
	}
	return nil
}
