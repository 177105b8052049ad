package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("request rejected")
	ErrServer       = errors.New("server error")
)

// APIError describes a failed call. It unwraps to one of the sentinel
// errors above, so callers match it with errors.Is.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	RequestID  string
	kind       error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v: %s", e.Method, e.Path, e.kind, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %v (%d)", e.Method, e.Path, e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v (%d): %s", e.Method, e.Path, e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

// classify maps an HTTP status to the error taxonomy.
func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status >= 500:
		return ErrServer
	case status >= 400:
		return ErrValidation
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}

// sessionExpired reports whether status must end the local session.
func sessionExpired(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
