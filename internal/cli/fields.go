package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alnah/go-blueprint/internal/config"
	"github.com/alnah/go-blueprint/internal/template"
)

// fieldFlags holds the placeholder inputs shared by prompt, generate and form.
type fieldFlags struct {
	fields     map[template.Key]*string
	set        []string
	valuesFile string
	template   string
}

// bindFieldFlags registers one flag per placeholder key plus --set,
// --values and --template on cmd.
func bindFieldFlags(cmd *cobra.Command) *fieldFlags {
	ff := &fieldFlags{fields: make(map[template.Key]*string)}
	desc := template.Default()

	for _, k := range template.Keys() {
		v := new(string)
		ff.fields[k] = v
		cmd.Flags().StringVar(v, k.Flag(), "", desc.Describe(k))
	}
	cmd.Flags().StringArrayVar(&ff.set, "set", nil, "Set a field as KEY=value (repeatable, e.g. --set COLORS=navy)")
	cmd.Flags().StringVar(&ff.valuesFile, "values", "", "YAML file mapping field keys to values")
	cmd.Flags().StringVarP(&ff.template, "template", "t", "", "Custom prompt template file (YAML or JSON)")

	return ff
}

// resolveTemplate returns the template to use: --template, then the config
// file's template, then the built-in default.
func (ff *fieldFlags) resolveTemplate(cfg config.Config) (*template.Template, error) {
	path := ff.template
	if path == "" {
		path = cfg.Template
	}
	if path == "" {
		return template.Default(), nil
	}

	path = config.ExpandPath(path)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template %s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("cannot access template: %w", err)
	}
	return template.Load(path)
}

// resolveValues merges field inputs. Later sources win:
// --values file, then --set, then the per-field flags that were given.
func (ff *fieldFlags) resolveValues(cmd *cobra.Command) (template.Values, error) {
	var v template.Values

	if ff.valuesFile != "" {
		fromFile, err := readValuesFile(ff.valuesFile)
		if err != nil {
			return v, err
		}
		v = v.Merge(fromFile)
	}

	for _, assignment := range ff.set {
		k, value, err := parseAssignment(assignment)
		if err != nil {
			return v, err
		}
		v.Set(k, value)
	}

	for _, k := range template.Keys() {
		if cmd.Flags().Changed(k.Flag()) {
			v.Set(k, *ff.fields[k])
		}
	}

	return v, nil
}

// parseAssignment splits "KEY=value" into a key and its value.
func parseAssignment(s string) (template.Key, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("%q (want KEY=value): %w", s, ErrInvalidAssignment)
	}
	k, err := template.ParseKey(name)
	if err != nil {
		return 0, "", err
	}
	return k, value, nil
}

// readValuesFile loads a YAML mapping of field keys to values.
func readValuesFile(path string) (template.Values, error) {
	path = config.ExpandPath(path)
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided values file
	if err != nil {
		if os.IsNotExist(err) {
			return template.Values{}, fmt.Errorf("values %s: %w", path, ErrFileNotFound)
		}
		return template.Values{}, fmt.Errorf("cannot read values file: %w", err)
	}

	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return template.Values{}, fmt.Errorf("invalid values file %s: %w", path, err)
	}
	return template.ValuesFromMap(m)
}
