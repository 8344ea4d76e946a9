package api

import (
	"errors"
	"fmt"
)

// NetworkError is a transport or timeout failure. These are the only
// retryable failures; callers that retry do so with their own backoff.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a server-rejected request (non-2xx response).
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// AuthError means invalid credentials or an expired session. Callers
// must downgrade to unauthenticated; it is never silently absorbed.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "auth: " + e.Message
}

// ValidationError is a client-side pre-network check failure. It blocks
// the request entirely and never reaches the gateway.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsRetryable reports whether the error is a transport failure worth
// retrying. Server rejections and auth failures are not.
func IsRetryable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
