package render

import "errors"

// ErrUnknownMode is returned by ParseMode for names other than hex and scatter.
var ErrUnknownMode = errors.New("unknown chart mode")
