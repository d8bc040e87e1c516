package common

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed request before any upstream call is
// made. It is the caller's fault and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthenticationError reports that the upstream rejected the configured
// credentials. It is fatal and surfaced as-is.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("upstream authentication failed: %s", e.Message)
}

// SessionExpiredError signals that an upstream call was rejected because the
// session token is no longer valid. It is an internal signal: the facade
// refreshes the session and retries once, and the error never reaches a
// caller directly.
type SessionExpiredError struct {
	Endpoint string
	Message  string
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("session expired on %s: %s", e.Endpoint, e.Message)
}

// UpstreamError wraps any non-auth failure from the provider with the
// endpoint that failed.
type UpstreamError struct {
	Endpoint string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream call %s failed: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsSessionExpired reports whether err (anywhere in its chain) is a
// session-expiry signal.
func IsSessionExpired(err error) bool {
	var se *SessionExpiredError
	return errors.As(err, &se)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthentication reports whether err is a credential rejection.
func IsAuthentication(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}
