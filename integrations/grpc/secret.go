package grpc

import (
	"context"

	"github.com/sssecrets/go-sssecrets/core"
	"github.com/sssecrets/go-sssecrets/token"
)

// GetSecret retrieves the checked secret from the context.
//
// Example:
//
//	secret, err := secretsgrpc.GetSecret(ctx)
//	if err != nil {
//	    return nil, status.Error(codes.Internal, "failed to get secret")
//	}
//	fmt.Println(secret.Prefix)
func GetSecret(ctx context.Context) (*token.Secret, error) {
	return core.GetSecret(ctx)
}

// MustGetSecret retrieves the secret from the context or panics.
// Use only when you are certain a secret exists (e.g., after the interceptor has run).
func MustGetSecret(ctx context.Context) *token.Secret {
	secret, err := core.GetSecret(ctx)
	if err != nil {
		panic(err)
	}
	return secret
}

// HasSecret checks if a secret exists in the context.
func HasSecret(ctx context.Context) bool {
	return core.HasSecret(ctx)
}
