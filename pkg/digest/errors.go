package digest

import "errors"

// ErrInvalidConfiguration is returned when digestion options cannot describe
// a valid enumeration (bad length bounds, negative miscleavages, unknown mode).
var ErrInvalidConfiguration = errors.New("digest: invalid configuration")
