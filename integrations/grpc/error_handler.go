package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sssecrets/go-sssecrets/core"
)

// ErrorHandler converts check errors to gRPC status errors.
type ErrorHandler func(error) error

// DefaultErrorHandler maps secret check errors to gRPC status codes.
// Messages never include the secret itself.
func DefaultErrorHandler(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		return mapValidationError(validationErr)
	}

	if errors.Is(err, core.ErrSecretMissing) {
		return status.Error(codes.Unauthenticated, "missing credentials")
	}

	if errors.Is(err, ErrMultipleAuthHeaders) ||
		errors.Is(err, ErrInvalidAuthFormat) ||
		errors.Is(err, ErrUnsupportedScheme) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	return status.Error(codes.Unauthenticated, "invalid or malformed secret")
}

func mapValidationError(err *core.ValidationError) error {
	switch err.Code {
	case core.ErrorCodeSecretMissing:
		return status.Error(codes.Unauthenticated, "missing credentials")
	case core.ErrorCodeSecretMalformed:
		return status.Error(codes.Unauthenticated, "malformed secret")
	case core.ErrorCodeChecksumMismatch:
		return status.Error(codes.Unauthenticated, "invalid secret checksum")
	case core.ErrorCodePrefixMismatch:
		return status.Error(codes.PermissionDenied, "secret prefix not accepted")
	case core.ErrorCodeFormatNotAllowed:
		return status.Error(codes.PermissionDenied, err.Message)
	case core.ErrorCodeConfigInvalid, core.ErrorCodeEngineNotSet:
		return status.Error(codes.Internal, "unable to check secret")
	default:
		return status.Error(codes.Unauthenticated, err.Message)
	}
}
