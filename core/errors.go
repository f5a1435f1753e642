package core

import "errors"

// Sentinel errors for secret checking.
var (
	// ErrSecretMissing is returned when no secret was presented.
	ErrSecretMissing = errors.New("secret missing")

	// ErrSecretInvalid is returned when the secret is invalid.
	// This is typically wrapped with more specific validation errors.
	ErrSecretInvalid = errors.New("secret invalid")

	// ErrSecretNotFound is returned when a secret cannot be retrieved from context.
	ErrSecretNotFound = errors.New("secret not found in context")
)

// ValidationError wraps secret validation errors with additional context.
// It provides structured error information that can be used for
// logging, metrics, and returning appropriate error responses.
type ValidationError struct {
	// Code is a machine-readable error code (e.g., "checksum_mismatch")
	Code string

	// Message is a human-readable error message
	Message string

	// Details contains the underlying error
	Details error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Details
}

// Is allows the error to be compared with ErrSecretInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrSecretInvalid
}

// Common error codes
const (
	ErrorCodeSecretMissing    = "secret_missing"
	ErrorCodeSecretMalformed  = "secret_malformed"
	ErrorCodeChecksumMismatch = "checksum_mismatch"
	ErrorCodePrefixMismatch   = "prefix_mismatch"
	ErrorCodeFormatNotAllowed = "format_not_allowed"
	ErrorCodeConfigInvalid    = "config_invalid"
	ErrorCodeEngineNotSet     = "engine_not_set"
	ErrorCodeSecretNotFound   = "secret_not_found"
)

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code, message string, details error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Code returns the error code carried by err, or "" if err is not a ValidationError.
func Code(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code
	}
	if errors.Is(err, ErrSecretMissing) {
		return ErrorCodeSecretMissing
	}
	return ""
}
