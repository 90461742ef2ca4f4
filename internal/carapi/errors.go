package carapi

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error kinds. Match them with errors.Is against any error returned by this package.
var (
	ErrNetwork       = errors.New("network error")
	ErrCORS          = errors.New("cors error")
	ErrTimeout       = errors.New("timeout")
	ErrMalformedJSON = errors.New("malformed json")
	ErrHTTP          = errors.New("http error")
	ErrAuth          = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrServer        = errors.New("server error")
	ErrAPI           = errors.New("api error")
	ErrInvalidShape  = errors.New("invalid response shape")
	ErrValidation    = errors.New("validation failed")
)

// Error is the single concrete error type produced by the client. Kind is one
// of the Err* sentinels above.
type Error struct {
	Kind    error
	Status  int           // HTTP status when one was received
	Message string        // human readable
	Fields  []string      // field-level messages for ErrValidation
	Timeout time.Duration // deadline that expired for ErrTimeout
	Err     error         // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, "; ")
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
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

// KindOf returns the kind sentinel of err, or nil when err did not come from
// this package.
func KindOf(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return nil
}

// FieldErrors returns the field-level validation messages carried by err.
func FieldErrors(err error) []string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func timeoutError(timeout time.Duration, cause error) *Error {
	return &Error{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("request timed out after %s; the server may be starting up, try again in a few seconds", timeout),
		Timeout: timeout,
		Err:     cause,
	}
}

// statusError maps a non-2xx status to its error kind.
func statusError(status int, message string, fields []string) *Error {
	e := &Error{Status: status, Message: message, Fields: fields}
	switch {
	case status == 401 || status == 403:
		e.Kind = ErrAuth
		e.Message = "unauthorized: check your API key"
	case status == 404:
		e.Kind = ErrNotFound
		e.Message = "resource not found (404)"
	case status == 500:
		e.Kind = ErrServer
		e.Message = "server error (500)"
	default:
		e.Kind = ErrHTTP
	}
	return e
}
