package core

import (
	"context"

	"github.com/sssecrets/go-sssecrets/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	secretKey contextKey = iota
)

// GetSecret retrieves the checked secret from the context.
//
// Example usage:
//
//	secret, err := core.GetSecret(ctx)
//	if err != nil {
//	    return err
//	}
//	record, err := store.Lookup(ctx, secret.Raw)
func GetSecret(ctx context.Context) (*token.Secret, error) {
	val := ctx.Value(secretKey)
	if val == nil {
		return nil, ErrSecretNotFound
	}

	secret, ok := val.(*token.Secret)
	if !ok || secret == nil {
		return nil, NewValidationError(
			ErrorCodeSecretNotFound,
			"secret type assertion failed",
			nil,
		)
	}

	return secret, nil
}

// SetSecret stores the secret in the context.
// This is a helper function for adapters to set the secret after checking.
func SetSecret(ctx context.Context, secret *token.Secret) context.Context {
	return context.WithValue(ctx, secretKey, secret)
}

// HasSecret checks if a secret exists in the context without retrieving it.
func HasSecret(ctx context.Context) bool {
	secret, ok := ctx.Value(secretKey).(*token.Secret)
	return ok && secret != nil
}
