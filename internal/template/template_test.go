package template_test

// Notes:
// - Black-box testing through the public API (Default, Parse, Interpolate, Keys)
// - Prompt wording is only checked where interpolation depends on it

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-blueprint/internal/template"
)

// allFilled returns Values with every key set to "v-<KEY>".
func allFilled() template.Values {
	var v template.Values
	for _, k := range template.Keys() {
		v.Set(k, "v-"+k.String())
	}
	return v
}

// ---------------------------------------------------------------------------
// TestInterpolate_AllFilled - no known token survives when every value is set
// ---------------------------------------------------------------------------

func TestInterpolate_AllFilled(t *testing.T) {
	t.Parallel()

	got := template.Default().Interpolate(allFilled())

	for _, k := range template.Keys() {
		if strings.Contains(got, k.Token()) {
			t.Errorf("output still contains %s", k.Token())
		}
	}
	if !strings.Contains(got, "v-APP_TYPE") {
		t.Errorf("output missing APP_TYPE value: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestInterpolate_EmptyValuesKeepTokens - unfilled fields echo their token
// ---------------------------------------------------------------------------

func TestInterpolate_EmptyValuesKeepTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		empty []template.Key
	}{
		{"single empty key", []template.Key{template.Colors}},
		{"several empty keys", []template.Key{template.AppType, template.VibeStyle, template.KeyFeatures}},
		{"every key empty", template.Keys()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := allFilled()
			for _, k := range tt.empty {
				v.Set(k, "")
			}
			got := template.Default().Interpolate(v)

			for _, k := range tt.empty {
				if !strings.Contains(got, k.Token()) {
					t.Errorf("output missing literal %s", k.Token())
				}
			}
		})
	}
}

func TestInterpolate_ZeroValuesReturnsBody(t *testing.T) {
	t.Parallel()

	tmpl := template.Default()
	if got := tmpl.Interpolate(template.Values{}); got != tmpl.Body() {
		t.Errorf("Interpolate(zero) differs from body:\n%s", cmp.Diff(tmpl.Body(), got))
	}
}

func TestInterpolate_Idempotent(t *testing.T) {
	t.Parallel()

	v := template.Values{}.With(template.AppType, "Fintech App").With(template.Colors, "Slate")
	first := template.Interpolate(template.Default(), v)
	second := template.Interpolate(template.Default(), v)

	if first != second {
		t.Errorf("Interpolate not deterministic:\n%s", cmp.Diff(first, second))
	}
}

// ---------------------------------------------------------------------------
// TestInterpolate_ReplacesAllOccurrences - repeated tokens all substituted
// ---------------------------------------------------------------------------

func TestInterpolate_ReplacesAllOccurrences(t *testing.T) {
	t.Parallel()

	tmpl := mustParse(t, `
prompt_template: "[COLORS] then [COLORS] again"
placeholders:
  COLORS: "main colors"
`)
	got := tmpl.Interpolate(template.Values{}.With(template.Colors, "X"))

	if got != "X then X again" {
		t.Errorf("got %q, want %q", got, "X then X again")
	}
}

func TestInterpolate_DefaultTemplateRepeatedKeys(t *testing.T) {
	t.Parallel()

	// MARKET_INDUSTRY and VIBE_STYLE each appear twice in the built-in body.
	v := template.Values{}.With(template.MarketIndustry, "Fintech").With(template.VibeStyle, "Brutalist")
	got := template.Default().Interpolate(v)

	if n := strings.Count(got, "Fintech"); n != 2 {
		t.Errorf("Fintech appears %d times, want 2", n)
	}
	if n := strings.Count(got, "Brutalist"); n != 2 {
		t.Errorf("Brutalist appears %d times, want 2", n)
	}
}

// ---------------------------------------------------------------------------
// TestInterpolate_NoRescan - inserted text is never re-substituted
// ---------------------------------------------------------------------------

func TestInterpolate_NoRescan(t *testing.T) {
	t.Parallel()

	tmpl := mustParse(t, `
prompt_template: "a=[APP_TYPE] c=[COLORS]"
placeholders:
  APP_TYPE: "app"
  COLORS: "colors"
`)

	tests := []struct {
		name string
		v    template.Values
		want string
	}{
		{
			name: "value contains another key's token",
			v:    template.Values{}.With(template.AppType, "[COLORS]").With(template.Colors, "red"),
			want: "a=[COLORS] c=red",
		},
		{
			name: "value contains its own token",
			v:    template.Values{}.With(template.AppType, "x[APP_TYPE]x"),
			want: "a=x[APP_TYPE]x c=[COLORS]",
		},
		{
			name: "value contains unknown bracket text",
			v:    template.Values{}.With(template.Colors, "[NOT_A_KEY]"),
			want: "a=[APP_TYPE] c=[NOT_A_KEY]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tmpl.Interpolate(tt.v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInterpolate_FintechScenario - only APP_TYPE filled on default template
// ---------------------------------------------------------------------------

func TestInterpolate_FintechScenario(t *testing.T) {
	t.Parallel()

	tmpl := template.Default()
	got := tmpl.Interpolate(template.Values{}.With(template.AppType, "Fintech App"))

	want := strings.ReplaceAll(tmpl.Body(), "[APP_TYPE]", "Fintech App")
	if got != want {
		t.Errorf("unexpected interpolation:\n%s", cmp.Diff(want, got))
	}
	if strings.Contains(got, "[APP_TYPE]") {
		t.Error("[APP_TYPE] should be replaced")
	}
	if !strings.Contains(got, "design a high-fidelity conceptual framework for a Fintech App.") {
		t.Errorf("APP_TYPE not substituted in place: %q", got)
	}
	for _, k := range template.Keys()[1:] {
		if !strings.Contains(got, k.Token()) {
			t.Errorf("%s should remain literally bracketed", k.Token())
		}
	}
}

// ---------------------------------------------------------------------------
// TestDefault - built-in template satisfies its invariants
// ---------------------------------------------------------------------------

func TestDefault(t *testing.T) {
	t.Parallel()

	tmpl := template.Default()

	if err := tmpl.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if diff := cmp.Diff(template.Keys(), tmpl.Placeholders()); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}
	for _, k := range template.Keys() {
		if tmpl.Describe(k) == "" {
			t.Errorf("Describe(%s) is empty", k)
		}
	}
	if tmpl.Name() != "Ultimate Design & Architecture Prompt for Google Stitch" {
		t.Errorf("Name() = %q", tmpl.Name())
	}
	if tmpl.Example() == "" {
		t.Error("Example() is empty")
	}
	if !strings.HasPrefix(tmpl.Body(), "Act as an expert UI/UX Designer") {
		t.Errorf("Body() = %q", tmpl.Body())
	}
}

// ---------------------------------------------------------------------------
// TestParse_Errors - invariant violations are rejected
// ---------------------------------------------------------------------------

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "empty body",
			yaml:    "prompt_template: \"  \"\n",
			wantErr: template.ErrEmptyBody,
		},
		{
			name:    "token without description",
			yaml:    "prompt_template: \"[APP_TYPE] and [COLORS]\"\nplaceholders:\n  APP_TYPE: app\n",
			wantErr: template.ErrMissingDescription,
		},
		{
			name:    "description without token",
			yaml:    "prompt_template: \"[APP_TYPE]\"\nplaceholders:\n  APP_TYPE: app\n  COLORS: colors\n",
			wantErr: template.ErrUnusedDescription,
		},
		{
			name:    "unknown placeholder key",
			yaml:    "prompt_template: \"[APP_TYPE]\"\nplaceholders:\n  APP_TYPE: app\n  MOOD: mood\n",
			wantErr: template.ErrUnknownKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := template.Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	if _, err := template.Parse([]byte("prompt_template: [unterminated")); err == nil {
		t.Error("Parse() expected error for malformed YAML")
	}
}

func TestParse_UnknownBracketTextIsLiteral(t *testing.T) {
	t.Parallel()

	tmpl := mustParse(t, `
prompt_template: "[NOTE] build a [APP_TYPE]"
placeholders:
  APP_TYPE: app
`)
	got := tmpl.Interpolate(template.Values{}.With(template.AppType, "CRM"))
	if got != "[NOTE] build a CRM" {
		t.Errorf("got %q", got)
	}
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	tmpl := mustParse(t, `{
  "template_name": "json",
  "prompt_template": "Design [UX_EMOTION] things",
  "placeholders": {"UX_EMOTION": "feeling"},
  "example_usage": "Design calm things"
}`)
	if tmpl.Name() != "json" || tmpl.Describe(template.UXEmotion) != "feeling" {
		t.Errorf("unexpected template: name=%q desc=%q", tmpl.Name(), tmpl.Describe(template.UXEmotion))
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tmpl.yaml")
	if err := os.WriteFile(path, []byte("prompt_template: \"[COLORS]\"\nplaceholders:\n  COLORS: c\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tmpl, err := template.Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got := tmpl.Interpolate(template.Values{}); got != "[COLORS]" {
		t.Errorf("got %q", got)
	}

	if _, err := template.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func mustParse(t *testing.T, data string) *template.Template {
	t.Helper()
	tmpl, err := template.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	return tmpl
}
