package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/pepdigest/pkg/config"
	"github.com/yaklabco/pepdigest/pkg/enzyme"
)

// ValidationError reports one bad configuration value.
type ValidationError struct {
	Field    string // e.g. "rules.pre[0]"
	Value    any
	Message  string
	FilePath string // empty for merged or environment values
	Line     int    // 0 when unknown
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	switch {
	case e.FilePath != "" && e.Line > 0:
		fmt.Fprintf(&b, "%s:%d: ", e.FilePath, e.Line)
	case e.FilePath != "":
		b.WriteString(e.FilePath + ": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field + ": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the problems found in one configuration.
// Errors block loading; Warnings are surfaced to the user.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// Err joins every error into one, or returns nil when the result is valid.
// Callers can still reach each *ValidationError with errors.As.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns every finding prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		out = append(out, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		out = append(out, "warning: "+w.Error())
	}
	return out
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: message})
}

// Validate checks cfg for out-of-range and unknown values. Zero lengths and
// empty names count as unset so a single file holding a few keys validates
// on its own; Load validates the merged result again.
func Validate(cfg *config.Config) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	if cfg.Enzyme != "" {
		if _, ok := enzyme.DefaultRegistry.Resolve(cfg.Enzyme); !ok {
			r.fail("enzyme", cfg.Enzyme, "unknown enzyme %q; must be one of: %s",
				cfg.Enzyme, strings.Join(enzyme.DefaultRegistry.Names(), ", "))
		}
	}

	checkLengths(cfg, r)

	if cfg.Miscleavages != nil && *cfg.Miscleavages < 0 {
		r.fail("miscleavages", *cfg.Miscleavages, "miscleavages must be >= 0")
	}
	if cfg.Digestion != "" && !cfg.Digestion.IsValid() {
		r.fail("digestion", cfg.Digestion, "invalid digestion %q; must be one of: full, semi, none", cfg.Digestion)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		r.fail("format", cfg.Format, "invalid format %q; must be one of: text, tsv, json, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Rules != nil {
		checkRules(cfg.Rules, r)
	}
	return r
}

func checkLengths(cfg *config.Config, r *ValidationResult) {
	if cfg.MinLength < 0 {
		r.fail("min_length", cfg.MinLength, "min_length must be >= 1")
	}
	if cfg.MaxLength < 0 {
		r.fail("max_length", cfg.MaxLength, "max_length must be >= 1")
	}
	if cfg.MinLength > 0 && cfg.MaxLength > 0 && cfg.MaxLength < cfg.MinLength {
		r.fail("max_length", cfg.MaxLength, "max_length %d is below min_length %d", cfg.MaxLength, cfg.MinLength)
	}
}

// checkRules requires every residue to be one ASCII letter. Empty entries are skipped.
func checkRules(rules *config.RulesConfig, r *ValidationResult) {
	fields := [...]string{"rules.pre", "rules.not_post", "rules.post"}
	for n, residues := range [][]string{rules.Pre, rules.NotPost, rules.Post} {
		field := fields[n]
		for i, residue := range residues {
			if residue != "" && !isResidueCode(residue) {
				r.fail(fmt.Sprintf("%s[%d]", field, i), residue, "residue %q must be a single ASCII character", residue)
			}
		}
	}

	if len(rules.Pre) == 0 && len(rules.Post) == 0 {
		r.warn("rules", "custom rules have no pre or post residues; only sequence ends will cut")
	}
}

func isResidueCode(s string) bool {
	return len(s) == 1 && s[0] < 0x80
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	r := Validate(cfg)
	for _, list := range [][]ValidationError{r.Errors, r.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return r
}
