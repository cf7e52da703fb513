package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the mock backend and the client wiring

var (
	// ErrNotFound indicates a requested fixture or sample does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates a failed login
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionExpired covers unknown, revoked and expired credentials alike
	ErrSessionExpired = errors.New("session is invalid or has expired")

	// ErrUnknownDeployment indicates a deployment name with no configuration
	ErrUnknownDeployment = errors.New("unknown deployment")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// SessionExpiredError wraps the reason a credential was rejected
func SessionExpiredError(reason error) error {
	if reason == nil {
		return ErrSessionExpired
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, reason)
}

// UnknownDeploymentError names the deployment that has no configuration
func UnknownDeploymentError(name string) error {
	return fmt.Errorf("%q: %w", name, ErrUnknownDeployment)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
