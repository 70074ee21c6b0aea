package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-blueprint/internal/cli"
	"github.com/alnah/go-blueprint/internal/config"
	"github.com/alnah/go-blueprint/internal/generate"
	"github.com/alnah/go-blueprint/internal/template"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitGeneration = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()
	rootCmd := newRootCmd(env)

	err := rootCmd.ExecuteContext(ctx)
	_ = env.Logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd builds the command tree around env.
func newRootCmd(env *cli.Env) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Fill a UI/UX design prompt and generate a design framework",
		Long: `blueprint fills a design & architecture prompt template from a handful of
fields (app type, market, audience, vibe, colors, features...), prints or
copies the prompt, and can send it to Gemini, OpenAI or DeepSeek to generate
a structured design framework rendered in the terminal.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cli.NewLogger(verbose)
			if err != nil {
				return err
			}
			env.SetLogger(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(cli.PromptCmd(env))
	rootCmd.AddCommand(cli.GenerateCmd(env))
	rootCmd.AddCommand(cli.FormCmd(env))
	rootCmd.AddCommand(cli.PlaceholdersCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Generation errors (ExitGeneration = 5). Checked first: a failure may
	// wrap setup causes such as a missing API key.
	var failure *generate.Failure
	if errors.As(err, &failure) {
		return ExitGeneration
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors.
	// Cobra doesn't expose typed errors, so we check for known error message patterns.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	// Setup errors (ExitSetup = 3): bad provider or unusable template/config.
	if errors.Is(err, cli.ErrInvalidProvider) || errors.Is(err, cli.ErrFileNotFound) ||
		errors.Is(err, template.ErrMissingDescription) || errors.Is(err, template.ErrUnusedDescription) ||
		errors.Is(err, template.ErrEmptyBody) || errors.Is(err, config.ErrInvalidSyntax) ||
		errors.Is(err, config.ErrNotDirectory) || errors.Is(err, config.ErrNotWritable) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, template.ErrUnknownKey) || errors.Is(err, cli.ErrInvalidAssignment) ||
		errors.Is(err, cli.ErrOutputExists) || errors.Is(err, cli.ErrInvalidStyle) ||
		errors.Is(err, cli.ErrInvalidSampling) ||
		errors.Is(err, cli.ErrUnknownConfigKey) || errors.Is(err, config.ErrInvalidKey) {
		return ExitValidation
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// These patterns are stable across Cobra versions (tested with v1.8+).
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
