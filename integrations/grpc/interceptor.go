package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"

	"github.com/sssecrets/go-sssecrets/core"
)

// SecretInterceptor checks structured secrets for gRPC servers.
type SecretInterceptor struct {
	core            *core.Core
	tokenExtractor  TokenExtractor
	errorHandler    ErrorHandler
	excludedMethods map[string]bool
	logger          Logger

	// Internal builder for accumulating core options
	coreBuilder *coreBuilder
}

// New creates a new gRPC secret interceptor with the provided options.
// WithEngine option is required.
func New(opts ...Option) (*SecretInterceptor, error) {
	interceptor := &SecretInterceptor{
		tokenExtractor:  MetadataTokenExtractor,
		errorHandler:    DefaultErrorHandler,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(interceptor); err != nil {
			return nil, err
		}
	}

	if interceptor.coreBuilder == nil || interceptor.coreBuilder.engine == nil {
		return nil, errors.New("token engine is required, use WithEngine option")
	}

	c, err := interceptor.coreBuilder.build()
	if err != nil {
		return nil, err
	}
	interceptor.core = c

	return interceptor, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that checks secrets.
// It extracts the secret from gRPC metadata, checks it, and makes it
// available in the request context.
func (i *SecretInterceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping secret check for excluded method",
					"method", info.FullMethod)
			}
			return handler(ctx, req)
		}

		checkedCtx, err := i.checkRequest(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}

		return handler(checkedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that checks secrets.
func (i *SecretInterceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping secret check for excluded method",
					"method", info.FullMethod)
			}
			return handler(srv, ss)
		}

		checkedCtx, err := i.checkRequest(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}

		return handler(srv, &wrappedServerStream{
			ServerStream: ss,
			ctx:          checkedCtx,
		})
	}
}

// checkRequest extracts and checks the secret carried in ctx.
func (i *SecretInterceptor) checkRequest(ctx context.Context, method string) (context.Context, error) {
	raw, err := i.tokenExtractor(ctx)
	if err != nil {
		if i.logger != nil {
			i.logger.Error("failed to extract secret from gRPC metadata",
				"error", err,
				"method", method)
		}
		return ctx, i.errorHandler(err)
	}

	secret, err := i.core.CheckSecret(ctx, raw)
	if err != nil {
		if i.logger != nil {
			i.logger.Warn("secret check failed",
				"error", err,
				"method", method)
		}
		return ctx, i.errorHandler(err)
	}

	if secret != nil {
		ctx = core.SetSecret(ctx, secret)
	} else if i.logger != nil {
		i.logger.Debug("no credentials provided, continuing without secret (credentials optional)",
			"method", method)
	}

	return ctx, nil
}

// wrappedServerStream wraps grpc.ServerStream with a custom context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context carrying the secret.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
