package forge

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRequired is returned before any request is sent when an operation
// needs credentials and none are available.
var ErrAuthRequired = errors.New("authentication required: run 'git-pr login' first")

// UsageError reports a missing or malformed command argument.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// NewUsageError formats a UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// EnvironmentError reports a missing external program or an unusable checkout.
type EnvironmentError struct {
	Message string
	Err     error
}

func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// TransportError reports an HTTP exchange that could not be completed.
type TransportError struct {
	Err    error
	Method string
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s could not be completed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a response with status >= 400.
type APIError struct {
	Body   string
	Hint   string // likely cause, when one is known
	Method string
	Status int
	URL    string
}

func (e *APIError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s %s was rejected with status %d (%s): %s",
			e.Method, e.URL, e.Status, e.Hint, e.Body)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// IsNotFound reports a 404 response.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsUnprocessable reports a 422 response.
func (e *APIError) IsUnprocessable() bool { return e.Status == http.StatusUnprocessableEntity }

// updateRejectedHint is a guess: the forge's own 422 body does not say why.
const updateRejectedHint = "the pull request was most likely already merged or closed by its owner"
