package configloader

import (
	"fmt"

	"github.com/yaklabco/pepdigest/pkg/config"
	"github.com/yaklabco/pepdigest/pkg/digest"
	"github.com/yaklabco/pepdigest/pkg/enzyme"
)

// Resolve turns a merged configuration into digestion options.
// Custom rules replace the enzyme's rules; otherwise the enzyme is looked up
// in registry. The result is validated by digest.Options.Validate.
func Resolve(cfg *config.Config, registry *enzyme.Registry) (digest.Options, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if registry == nil {
		registry = enzyme.DefaultRegistry
	}

	opts := digest.DefaultOptions()

	switch {
	case cfg.Rules != nil:
		opts.Rules = digest.Rules{
			Pre:     digest.ResiduesOf(cfg.Rules.Pre),
			NotPost: digest.ResiduesOf(cfg.Rules.NotPost),
			Post:    digest.ResiduesOf(cfg.Rules.Post),
		}
	case cfg.Enzyme != "":
		e, ok := registry.Resolve(cfg.Enzyme)
		if !ok {
			return digest.Options{}, fmt.Errorf("%w: unknown enzyme %q", digest.ErrInvalidConfiguration, cfg.Enzyme)
		}
		opts.Rules = e.Rules
	}

	if cfg.MinLength != 0 {
		opts.MinLen = cfg.MinLength
	}
	if cfg.MaxLength != 0 {
		opts.MaxLen = cfg.MaxLength
	}
	opts.Miscleavages = cfg.MiscleavagesValue()
	opts.MethionineCleavage = cfg.MethionineCleavageValue()

	mode, err := digest.ParseMode(string(cfg.Digestion))
	if err != nil {
		return digest.Options{}, err
	}
	opts.Mode = mode

	if err := opts.Validate(); err != nil {
		return digest.Options{}, err
	}
	return opts, nil
}

// EnzymeLabel describes where the resolved rules come from, for logs and reports.
func EnzymeLabel(cfg *config.Config) string {
	if cfg == nil {
		return config.DefaultEnzyme
	}
	if cfg.Rules != nil {
		return "custom"
	}
	if cfg.Enzyme == "" {
		return config.DefaultEnzyme
	}
	return cfg.Enzyme
}
