package zone

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownLabel = errors.New("unknown zone label")
)
