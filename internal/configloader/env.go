package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/pepdigest/pkg/config"
)

// envVarPrefix is the prefix for all pepdigest environment variables.
const envVarPrefix = "PEPDIGEST_"

// envVar binds one PEPDIGEST_* variable to a config field.
type envVar struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, raw string) error
}

// envVars lists the recognised variables in application order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"ENZYME", "enzyme", "Enzyme preset name",
		stringSetter(func(c *config.Config, v string) { c.Enzyme = v })},
	{"PRE", "rules.pre", "Comma-separated residues cut after",
		rulesSetter(func(r *config.RulesConfig, v []string) { r.Pre = v })},
	{"NOT_POST", "rules.not_post", "Comma-separated residues that block a pre cut",
		rulesSetter(func(r *config.RulesConfig, v []string) { r.NotPost = v })},
	{"POST", "rules.post", "Comma-separated residues cut before",
		rulesSetter(func(r *config.RulesConfig, v []string) { r.Post = v })},
	{"MIN_LENGTH", "min_length", "Minimum peptide length",
		intSetter(func(c *config.Config, v int) { c.MinLength = v })},
	{"MAX_LENGTH", "max_length", "Maximum peptide length",
		intSetter(func(c *config.Config, v int) { c.MaxLength = v })},
	{"MISCLEAVAGES", "miscleavages", "Allowed missed cleavages",
		intSetter(func(c *config.Config, v int) { c.Miscleavages = config.Ptr(v) })},
	{"METHIONINE_CLEAVAGE", "methionine_cleavage", "Free cut after N-terminal methionine: true or false",
		boolSetter(func(c *config.Config, v bool) { c.MethionineCleavage = config.Ptr(v) })},
	{"DIGESTION", "digestion", "Digestion mode: full, semi, or none",
		stringSetter(func(c *config.Config, v string) { c.Digestion = config.Digestion(strings.ToLower(v)) })},
	{"UNIQUE", "unique", "Drop repeated peptides: true or false",
		boolSetter(func(c *config.Config, v bool) { c.Unique = config.Ptr(v) })},
	{"FORMAT", "format", "Output format: text, tsv, json, or summary",
		stringSetter(func(c *config.Config, v string) { c.Format = config.OutputFormat(strings.ToLower(v)) })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intSetter(func(c *config.Config, v int) { c.Jobs = v })},
}

func (e envVar) name() string { return envVarPrefix + e.suffix }

func stringSetter(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, strings.TrimSpace(raw))
		return nil
	}
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		set(cfg, v)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
		}
		set(cfg, v)
		return nil
	}
}

// rulesSetter writes one residue list. Any rules variable switches the
// config to custom rules.
func rulesSetter(set func(*config.RulesConfig, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		if cfg.Rules == nil {
			cfg.Rules = &config.RulesConfig{}
		}
		set(cfg.Rules, parseSliceValue(raw))
		return nil
	}
}

// LoadFromEnv applies PEPDIGEST_* overrides to cfg. Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		raw := os.Getenv(v.name())
		if raw == "" {
			continue
		}
		if err := v.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", v.name(), err)
		}
	}

	return nil
}

// parseSliceValue splits a comma-separated list, dropping blank entries.
func parseSliceValue(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the variable that sets a config field, or "".
func GetEnvVarName(field string) string {
	i := slices.IndexFunc(envVars, func(v envVar) bool { return v.field == field })
	if i < 0 {
		return ""
	}
	return envVars[i].name()
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[v.name()] = v.description
	}
	return out
}

// EnvVarNames returns the supported variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, v := range envVars {
		names = append(names, v.name())
	}
	slices.Sort(names)
	return names
}
