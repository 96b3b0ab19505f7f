package api

import (
	"errors"
	"net/http"

	service "github.com/okian/courtzones/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrTooLarge    = errors.New("request too large")
	ErrUnsupported = errors.New("unsupported media type")
	ErrEmptyChart  = errors.New("empty chart")
	ErrInternal    = errors.New("internal error")
)

// Error is an error raised by a handler operation. Kind is one of the
// sentinels above and decides the HTTP status.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind with no further cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap tags err with op. The kind is inferred from err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

// WrapKind tags err with op and an explicit kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func kindOf(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind != nil {
		return apiErr.Kind
	}
	if errors.Is(err, service.ErrEmptyChart) {
		return ErrEmptyChart
	}
	return ErrInternal
}

// statusOf maps an error to its HTTP status and response code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, ErrUnsupported):
		return http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, ErrEmptyChart), errors.Is(err, service.ErrEmptyChart):
		return http.StatusUnprocessableEntity, "empty_chart"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
