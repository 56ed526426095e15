package errors

import (
	"errors"
	"fmt"
)

// Standard error kinds
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrHTTPRequest    = errors.New("HTTP request error")
	ErrMalformedQuery = errors.New("malformed query")
	ErrNotAuthorized  = errors.New("not authorized")
	ErrServerError    = errors.New("server error")
	ErrTimeout        = errors.New("timeout")
	ErrTransport      = errors.New("transport failure")
	ErrResultParse    = errors.New("result parse error")
)

// kinds lists the sentinels KindOf reports, most specific first
var kinds = []error{
	ErrMalformedQuery,
	ErrNotAuthorized,
	ErrServerError,
	ErrTimeout,
	ErrTransport,
	ErrResultParse,
	ErrHTTPRequest,
	ErrConfiguration,
}

// Error is the outcome of a failed SPARQL dispatch.
type Error struct {
	Kind       error       // One of the Err* sentinels
	Op         string      // Operation name, e.g. "select"
	StatusCode int         // HTTP status, zero when no response was received
	Body       []byte      // Raw response body
	Payload    interface{} // Parsed response body (MalformedQuery only)
	Err        error       // Underlying cause
}

// Error returns a one-line description including the status and cause when known
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	} else if len(e.Body) > 0 {
		msg = msg + ": " + excerpt(e.Body)
	}
	return msg
}

// Is reports whether target is the kind of this error
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %v", errType, wrapped)
}

// KindOf returns the error kind carried by err, or nil if it has none
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// excerpt trims long bodies so they stay readable in a single log line
func excerpt(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
