package configloader

import (
	"cmp"

	"github.com/yaklabco/pepdigest/pkg/config"
)

// merge layers override on top of base and returns a new Config.
// Zero scalars and nil pointers in override leave base alone; a non-nil
// Rules block replaces the base rules as a whole.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := base.Clone()
	out.Enzyme = cmp.Or(override.Enzyme, out.Enzyme)
	out.MinLength = cmp.Or(override.MinLength, out.MinLength)
	out.MaxLength = cmp.Or(override.MaxLength, out.MaxLength)
	out.Digestion = cmp.Or(override.Digestion, out.Digestion)
	out.Format = cmp.Or(override.Format, out.Format)
	out.Jobs = cmp.Or(override.Jobs, out.Jobs)

	out.Miscleavages = overridePtr(override.Miscleavages, out.Miscleavages)
	out.MethionineCleavage = overridePtr(override.MethionineCleavage, out.MethionineCleavage)
	out.Unique = overridePtr(override.Unique, out.Unique)

	if override.Rules != nil {
		out.Rules = override.Clone().Rules
	}
	return out
}

// overridePtr returns a copy of v when set, otherwise fallback.
func overridePtr[T any](v, fallback *T) *T {
	if v == nil {
		return fallback
	}
	return config.Ptr(*v)
}

// MergeAll folds configs left to right; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
