package llm

import (
	"errors"
	"fmt"
)

// BackendError wraps any failure talking to a backend. It is retryable
// up to the caller's ceiling; on exhaustion it either propagates or is
// absorbed by a category's fallback generator.
type BackendError struct {
	Provider Provider
	Status   int // HTTP status when applicable, 0 otherwise
	Message  string
	Err      error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s backend: status %d: %s", e.Provider, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s backend: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s backend: %s", e.Provider, e.Message)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsBackendError reports whether err is (or wraps) a BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
