// Package config defines core configuration types for pepdigest.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

// Digestion names a digestion engine as written in config files and flags.
type Digestion string

const (
	DigestionFull Digestion = "full"
	DigestionSemi Digestion = "semi"
	DigestionNone Digestion = "none"
)

// IsValid returns true if the digestion mode is known.
func (d Digestion) IsValid() bool {
	switch d {
	case DigestionFull, DigestionSemi, DigestionNone:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how peptides are written.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTSV     OutputFormat = "tsv"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTSV, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// Defaults for a fresh configuration.
const (
	DefaultEnzyme             = "trypsin"
	DefaultMinLength          = 6
	DefaultMaxLength          = 50
	DefaultMiscleavages       = 0
	DefaultMethionineCleavage = true
)

// RulesConfig lists custom cleavage residues. When present it replaces the
// rules of the named enzyme entirely.
type RulesConfig struct {
	Pre     []string `yaml:"pre,omitempty"`
	NotPost []string `yaml:"not_post,omitempty"`
	Post    []string `yaml:"post,omitempty"`
}

// Config is the root configuration structure for pepdigest.
type Config struct {
	// Enzyme names a preset from the enzyme registry.
	Enzyme string `yaml:"enzyme,omitempty"`

	// Rules overrides the enzyme with custom residue lists.
	Rules *RulesConfig `yaml:"rules,omitempty"`

	// MinLength and MaxLength bound peptide lengths, inclusive.
	// Zero means unset.
	MinLength int `yaml:"min_length,omitempty"`
	MaxLength int `yaml:"max_length,omitempty"`

	// Miscleavages is the number of uncut sites a peptide may span.
	Miscleavages *int `yaml:"miscleavages,omitempty"`

	// MethionineCleavage frees the site after an N-terminal methionine.
	MethionineCleavage *bool `yaml:"methionine_cleavage,omitempty"`

	// Digestion selects the engine: full, semi or none.
	Digestion Digestion `yaml:"digestion,omitempty"`

	// Unique drops repeated peptides within a sequence.
	Unique *bool `yaml:"unique,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs specifies the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Enzyme:             DefaultEnzyme,
		MinLength:          DefaultMinLength,
		MaxLength:          DefaultMaxLength,
		Miscleavages:       Ptr(DefaultMiscleavages),
		MethionineCleavage: Ptr(DefaultMethionineCleavage),
		Digestion:          DigestionFull,
		Unique:             Ptr(false),
		Format:             FormatText,
		Jobs:               0,
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// MiscleavagesValue returns Miscleavages or its default when unset.
func (c *Config) MiscleavagesValue() int {
	if c.Miscleavages == nil {
		return DefaultMiscleavages
	}
	return *c.Miscleavages
}

// MethionineCleavageValue returns MethionineCleavage or its default when unset.
func (c *Config) MethionineCleavageValue() bool {
	if c.MethionineCleavage == nil {
		return DefaultMethionineCleavage
	}
	return *c.MethionineCleavage
}

// UniqueValue returns Unique, false when unset.
func (c *Config) UniqueValue() bool {
	return c.Unique != nil && *c.Unique
}
