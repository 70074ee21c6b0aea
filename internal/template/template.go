// Package template holds the prompt template and its placeholder interpolation.
//
// A template body embeds bracketed tokens such as [APP_TYPE]. Interpolation
// replaces each token with the matching user value, or leaves the token in
// place when the value is empty so unfilled fields stay visible.
package template

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// defaultTemplate is parsed once; the embedded file is versioned with the binary.
var defaultTemplate = mustParse(defaultYAML)

// tokenPattern matches bracketed upper-case tokens. Only names in the fixed
// key set are placeholders; anything else is literal text.
var tokenPattern = regexp.MustCompile(`\[([A-Z][A-Z0-9_]*)\]`)

// Template is an immutable prompt template.
// Use Default for the built-in template or Parse/Load for custom files.
type Template struct {
	name         string
	description  string
	body         string
	descriptions [keyCount]string
	example      string
}

// document is the on-disk shape of a template (YAML or JSON).
type document struct {
	Name         string            `yaml:"template_name"`
	Description  string            `yaml:"description"`
	Body         string            `yaml:"prompt_template"`
	Placeholders map[string]string `yaml:"placeholders"`
	Example      string            `yaml:"example_usage"`
}

// Default returns the built-in design & architecture template.
func Default() *Template {
	return defaultTemplate
}

// Parse decodes a template from YAML (or JSON, which YAML accepts) and checks
// that body tokens and placeholder descriptions match one to one.
func Parse(data []byte) (*Template, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode template: %w", err)
	}

	t := &Template{
		name:        doc.Name,
		description: doc.Description,
		body:        doc.Body,
		example:     doc.Example,
	}
	for name, desc := range doc.Placeholders {
		k, ok := parseTokenName(name)
		if !ok {
			return nil, fmt.Errorf("placeholder %q: %w", name, ErrUnknownKey)
		}
		t.descriptions[k] = desc
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads and parses a template file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided template path
	if err != nil {
		return nil, fmt.Errorf("cannot read template: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func mustParse(data []byte) *Template {
	t, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("template: built-in template is invalid: %v", err))
	}
	return t
}

// Validate checks the token/description invariant: every placeholder token in
// the body has a description, and every description has a token in the body.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.body) == "" {
		return ErrEmptyBody
	}

	var used [keyCount]bool
	for _, k := range t.Placeholders() {
		used[k] = true
		if t.descriptions[k] == "" {
			return fmt.Errorf("%s: %w", k.Token(), ErrMissingDescription)
		}
	}
	for i, desc := range t.descriptions {
		if desc != "" && !used[i] {
			return fmt.Errorf("%s: %w", Key(i).Token(), ErrUnusedDescription)
		}
	}
	return nil
}

// Placeholders returns the keys whose token appears in the body, in
// canonical order and without duplicates.
func (t *Template) Placeholders() []Key {
	var seen [keyCount]bool
	for _, m := range tokenPattern.FindAllStringSubmatch(t.body, -1) {
		if k, ok := parseTokenName(m[1]); ok {
			seen[k] = true
		}
	}
	var keys []Key
	for i, ok := range seen {
		if ok {
			keys = append(keys, Key(i))
		}
	}
	return keys
}

// Interpolate substitutes every placeholder token in the body.
// A non-empty value replaces all occurrences of its token; an empty value
// leaves the token as-is. Replacement is a single left-to-right pass, so
// text inserted for one key is never rescanned for another key's token.
func (t *Template) Interpolate(v Values) string {
	pairs := make([]string, 0, 2*keyCount)
	for i, value := range v.v {
		token := Key(i).Token()
		if value == "" {
			value = token
		}
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...).Replace(t.body)
}

// Interpolate is a convenience for t.Interpolate(v).
func Interpolate(t *Template, v Values) string {
	return t.Interpolate(v)
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Description returns the template summary.
func (t *Template) Description() string { return t.description }

// Body returns the raw template body with tokens.
func (t *Template) Body() string { return t.body }

// Example returns the example usage text.
func (t *Template) Example() string { return t.example }

// Describe returns the description of k, or "" if the template does not use k.
func (t *Template) Describe(k Key) string {
	if !k.Valid() {
		return ""
	}
	return t.descriptions[k]
}
