package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// PlaceholdersCmd creates the placeholders command (list template fields).
// The env parameter provides injectable dependencies for testing.
func PlaceholdersCmd(env *Env) *cobra.Command {
	var (
		tmplPath    string
		showExample bool
	)

	cmd := &cobra.Command{
		Use:     "placeholders",
		Aliases: []string{"fields"},
		Short:   "List the template fields and what they mean",
		Long: `List every placeholder of the prompt template with its flag name and
description. Use --example to also print the template's example usage.`,
		Example: `  blueprint placeholders
  blueprint placeholders --example
  blueprint placeholders -t my-template.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaceholders(env, tmplPath, showExample)
		},
	}

	cmd.Flags().StringVarP(&tmplPath, "template", "t", "", "Custom prompt template file (YAML or JSON)")
	cmd.Flags().BoolVar(&showExample, "example", false, "Print the example usage after the list")

	return cmd
}

// runPlaceholders executes the placeholders command.
func runPlaceholders(env *Env, tmplPath string, showExample bool) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	ff := &fieldFlags{template: tmplPath}
	tmpl, err := ff.resolveTemplate(cfg)
	if err != nil {
		return err
	}

	if name := tmpl.Name(); name != "" {
		fmt.Fprintf(env.Stdout, "%s\n\n", name)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, k := range tmpl.Placeholders() {
		fmt.Fprintf(tw, "%s\t--%s\t%s\n", k, k.Flag(), tmpl.Describe(k))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if showExample && tmpl.Example() != "" {
		fmt.Fprintf(env.Stdout, "\nExample:\n%s\n", tmpl.Example())
	}
	return nil
}
