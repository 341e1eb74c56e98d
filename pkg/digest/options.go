package digest

import (
	"fmt"
	"strings"
)

// Mode selects a digestion engine.
type Mode int

const (
	// ModeFull requires cleavage sites at both termini.
	ModeFull Mode = iota
	// ModeSemi requires a cleavage site at one terminus or more.
	ModeSemi
	// ModeNone ignores cleavage rules and yields every substring.
	ModeNone
)

// Default option values.
const (
	DefaultMinLen             = 6
	DefaultMaxLen             = 50
	DefaultMiscleavages       = 0
	DefaultMethionineCleavage = true
)

// String returns the external name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSemi:
		return "semi"
	case ModeNone:
		return "none"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsValid reports whether m names an engine.
func (m Mode) IsValid() bool {
	return m >= ModeFull && m <= ModeNone
}

// ParseMode maps "full", "semi" or "none" (case-insensitive) to a Mode.
// The empty string selects ModeFull.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return ModeFull, nil
	case "semi":
		return ModeSemi, nil
	case "none":
		return ModeNone, nil
	default:
		return ModeFull, fmt.Errorf("%w: unknown digestion mode %q; valid modes: full, semi, none",
			ErrInvalidConfiguration, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: unknown digestion mode %d", ErrInvalidConfiguration, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Options configures one digestion call.
type Options struct {
	// MinLen and MaxLen are inclusive peptide length bounds.
	MinLen int
	MaxLen int

	// Rules locate cleavage sites. Ignored by ModeNone.
	Rules Rules

	// Miscleavages is the number of uncut sites a peptide may span.
	Miscleavages int

	// MethionineCleavage treats the site after an N-terminal 'M' as a free
	// boundary that never counts as a missed cleavage.
	MethionineCleavage bool

	// Mode selects the engine.
	Mode Mode
}

// DefaultOptions returns tryptic full digestion of 6-50 residue peptides
// with no missed cleavages and methionine cleavage on.
func DefaultOptions() Options {
	return Options{
		MinLen:             DefaultMinLen,
		MaxLen:             DefaultMaxLen,
		Rules:              Trypsin(),
		Miscleavages:       DefaultMiscleavages,
		MethionineCleavage: DefaultMethionineCleavage,
		Mode:               ModeFull,
	}
}

// Validate reports the first problem that makes o unusable.
// Every error wraps ErrInvalidConfiguration.
func (o Options) Validate() error {
	switch {
	case o.MinLen < 1:
		return fmt.Errorf("%w: min length must be >= 1, got %d", ErrInvalidConfiguration, o.MinLen)
	case o.MaxLen < o.MinLen:
		return fmt.Errorf("%w: max length %d is below min length %d", ErrInvalidConfiguration, o.MaxLen, o.MinLen)
	case o.Miscleavages < 0:
		return fmt.Errorf("%w: miscleavages must be >= 0, got %d", ErrInvalidConfiguration, o.Miscleavages)
	case !o.Mode.IsValid():
		return fmt.Errorf("%w: unknown digestion mode %d", ErrInvalidConfiguration, int(o.Mode))
	}
	return nil
}
