package source

import "errors"

// Sentinel errors returned by the loaders.
var (
	ErrDecode        = errors.New("decode shot data")
	ErrMissingColumn = errors.New("missing column")
	ErrMissingSet    = errors.New("missing result set")
	ErrFormat        = errors.New("unsupported file format")
)
