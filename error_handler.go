package sssecrets

import (
	"errors"
	"net/http"

	"github.com/sssecrets/go-sssecrets/core"
)

var (
	// ErrSecretMissing is returned when no secret was presented.
	ErrSecretMissing = core.ErrSecretMissing

	// ErrSecretInvalid is returned when the secret is malformed or its checksum does not match.
	ErrSecretInvalid = core.ErrSecretInvalid
)

// ErrorHandler is a handler which is called when an error occurs in the
// Middleware. Among some general errors, this handler also determines the
// response of the Middleware when a secret is not found or is invalid. The
// err can be checked to be ErrSecretMissing or ErrSecretInvalid for specific cases.
// The default handler will return a status code of 400 for ErrSecretMissing,
// 401 for ErrSecretInvalid, and 500 for all other errors. If you implement your
// own ErrorHandler you MUST take into consideration the error types as not
// properly responding to them or having a poorly implemented handler could
// result in the Middleware not functioning as intended.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation for the
// Middleware. If an error handler is not provided via the WithErrorHandler
// option this will be used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrSecretMissing):
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Secret is missing."}`))
	case errors.Is(err, ErrSecretInvalid):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Secret is invalid."}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while checking the secret."}`))
	}
}
