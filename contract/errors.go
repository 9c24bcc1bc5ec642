package contract

import "errors"

var (
	// ErrUnauthorized indicates the caller is not allowed to perform the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates an argument failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyInitialized indicates the registry already has an administrator.
	ErrAlreadyInitialized = errors.New("registry already initialized")
)

// IsUnauthorized reports whether err carries ErrUnauthorized.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsInvalidInput reports whether err carries ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
