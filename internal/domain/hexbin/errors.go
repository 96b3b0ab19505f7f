package hexbin

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid binning config")
	ErrInvalidTail   = errors.New("invalid clamp tail")
)
