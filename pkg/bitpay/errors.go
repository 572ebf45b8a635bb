package bitpay

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned before any network access when a caller
// supplied value cannot be sent to the server.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError is returned when the server answers with an error envelope.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError wraps any failure of the underlying HTTP exchange
// (DNS, TLS, connection reset, timeout, cancelled context).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is returned for a non-2xx response that carries no error envelope.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// ParseError is returned when a response body is not the JSON shape expected
// for the operation.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unmarshal JSON: %s (body: %q)", e.Err, e.Body)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(body []byte, err error) *ParseError {
	return &ParseError{Body: truncate(string(body), 300), Err: err}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max] + "...(truncated)"
	}
	return s
}
