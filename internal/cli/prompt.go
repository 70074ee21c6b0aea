package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/format"
)

// PromptCmd creates the prompt command (print the interpolated prompt).
// The env parameter provides injectable dependencies for testing.
func PromptCmd(env *Env) *cobra.Command {
	var copyPrompt bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the interpolated design prompt",
		Long: `Fill the design prompt template with the given fields and print it.

Fields left empty keep their bracketed token (for example [COLORS]) so the
prompt stays readable and can be completed by hand.`,
		Example: `  blueprint prompt --app-type "Fintech App" --colors "Slate, Indigo"
  blueprint prompt --set MARKET_INDUSTRY=Healthcare --copy
  blueprint prompt --values fields.yaml -t my-template.yaml`,
		Args: cobra.NoArgs,
	}

	ff := bindFieldFlags(cmd)
	cmd.Flags().BoolVarP(&copyPrompt, "copy", "c", false, "Also copy the prompt to the clipboard")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPrompt(cmd, env, ff, copyPrompt)
	}
	return cmd
}

// runPrompt executes the prompt command.
func runPrompt(cmd *cobra.Command, env *Env, ff *fieldFlags, copyPrompt bool) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	tmpl, err := ff.resolveTemplate(cfg)
	if err != nil {
		return err
	}
	values, err := ff.resolveValues(cmd)
	if err != nil {
		return err
	}

	prompt := tmpl.Interpolate(values)
	fmt.Fprintln(env.Stdout, prompt)

	filled := len(values.Filled())
	env.Logger.Debug("prompt interpolated", zap.Int("filled", filled), zap.Int("chars", len(prompt)))

	if copyPrompt {
		if env.Clipboard.Copy(prompt) {
			fmt.Fprintf(env.Stderr, "Copied prompt to clipboard (%s filled).\n", format.Count(filled, "field"))
		} else {
			fmt.Fprintln(env.Stderr, "Warning: could not copy to clipboard")
		}
	}
	return nil
}
