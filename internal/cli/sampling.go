package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/generate"
)

// Flag names for provider tuning.
const (
	flagTemperature    = "temperature"
	flagTopP           = "top-p"
	flagThinkingBudget = "thinking-budget"
	flagBaseURL        = "base-url"
)

// maxTemperature is the highest temperature accepted by every provider.
const maxTemperature = 2

// samplingOptions holds the provider tuning flags shared by generate and form.
// A nil field keeps the provider default.
type samplingOptions struct {
	temperature    *float32
	topP           *float32
	thinkingBudget *int32
	baseURL        string
}

// bindSamplingFlags registers the tuning flags on cmd.
func bindSamplingFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float32(flagTemperature, 0, "Sampling temperature, 0 to 2 (default: 0.8)")
	f.Float32(flagTopP, 0, "Nucleus sampling probability mass, above 0 up to 1 (default: 0.95)")
	f.Int32(flagThinkingBudget, 0, "Gemini reasoning token budget, 0 disables thinking (default: 4000)")
	f.String(flagBaseURL, "", "API endpoint override, for proxies or compatible servers")
}

// readSamplingFlags collects the tuning flags that were set explicitly.
func readSamplingFlags(fs *pflag.FlagSet) (samplingOptions, error) {
	var o samplingOptions

	if fs.Changed(flagTemperature) {
		v, err := fs.GetFloat32(flagTemperature)
		if err != nil {
			return o, err
		}
		o.temperature = &v
	}
	if fs.Changed(flagTopP) {
		v, err := fs.GetFloat32(flagTopP)
		if err != nil {
			return o, err
		}
		o.topP = &v
	}
	if fs.Changed(flagThinkingBudget) {
		v, err := fs.GetInt32(flagThinkingBudget)
		if err != nil {
			return o, err
		}
		o.thinkingBudget = &v
	}
	baseURL, err := fs.GetString(flagBaseURL)
	if err != nil {
		return o, err
	}
	o.baseURL = baseURL

	return o, nil
}

// validate rejects out-of-range tuning values.
func (o samplingOptions) validate() error {
	if o.temperature != nil && (*o.temperature < 0 || *o.temperature > maxTemperature) {
		return fmt.Errorf("--%s %v (use 0 to %d): %w", flagTemperature, *o.temperature, maxTemperature, ErrInvalidSampling)
	}
	if o.topP != nil && (*o.topP <= 0 || *o.topP > 1) {
		return fmt.Errorf("--%s %v (use a value above 0 up to 1): %w", flagTopP, *o.topP, ErrInvalidSampling)
	}
	if o.thinkingBudget != nil && *o.thinkingBudget < 0 {
		return fmt.Errorf("--%s %d (use 0 or more): %w", flagThinkingBudget, *o.thinkingBudget, ErrInvalidSampling)
	}
	return nil
}

// generatorOptions builds the generate options for model, logger and the
// explicitly set tuning values.
func (o samplingOptions) generatorOptions(model string, logger *zap.Logger) []generate.Option {
	opts := []generate.Option{
		generate.WithModel(model),
		generate.WithLogger(logger),
	}
	if o.temperature != nil {
		opts = append(opts, generate.WithTemperature(*o.temperature))
	}
	if o.topP != nil {
		opts = append(opts, generate.WithTopP(*o.topP))
	}
	if o.thinkingBudget != nil {
		opts = append(opts, generate.WithThinkingBudget(*o.thinkingBudget))
	}
	if o.baseURL != "" {
		opts = append(opts, generate.WithBaseURL(o.baseURL))
	}
	return opts
}
