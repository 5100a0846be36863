package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the API server is unreachable
	ErrServerOffline = errors.New("api server is unreachable")

	// ErrAuthFailed indicates the server rejected the supplied credentials
	ErrAuthFailed = errors.New("authentication failed")

	// ErrUnauthenticated indicates there is no valid session
	ErrUnauthenticated = errors.New("not signed in")

	// ErrInvalidRequest indicates a request body failed validation before sending
	ErrInvalidRequest = errors.New("invalid request body")

	// ErrInvalidResponse indicates a response body did not match its expected shape
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrEpisodeNotFound indicates the requested episode does not exist
	ErrEpisodeNotFound = errors.New("episode not found")

	// ErrSeekOutOfRange indicates a seek value outside [0, duration] or NaN
	ErrSeekOutOfRange = errors.New("seek position out of range")
)

// StatusError is returned for any non-success HTTP response that has no
// more specific sentinel.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string

	// Err is a sentinel the status maps to, if any
	Err error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d", e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
