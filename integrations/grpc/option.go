package grpc

import (
	"errors"

	"github.com/sssecrets/go-sssecrets/core"
	"github.com/sssecrets/go-sssecrets/token"
)

// Option configures the secret interceptor.
type Option func(*SecretInterceptor) error

// Logger defines an optional logging interface compatible with log/slog.
// This is the same interface used by core for consistent logging across the stack.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// coreBuilder helps build a core.Core with accumulated options.
type coreBuilder struct {
	engine              *token.Engine
	credentialsOptional *bool
	formats             *core.Format
	prefixCheck         *bool
	logger              Logger
}

func (b *coreBuilder) build() (*core.Core, error) {
	opts := []core.Option{
		core.WithEngine(b.engine),
	}

	if b.credentialsOptional != nil {
		opts = append(opts, core.WithCredentialsOptional(*b.credentialsOptional))
	}
	if b.formats != nil {
		opts = append(opts, core.WithFormats(*b.formats))
	}
	if b.prefixCheck != nil {
		opts = append(opts, core.WithPrefixCheck(*b.prefixCheck))
	}
	if b.logger != nil {
		opts = append(opts, core.WithLogger(b.logger))
	}

	return core.New(opts...)
}

func (i *SecretInterceptor) builder() *coreBuilder {
	if i.coreBuilder == nil {
		i.coreBuilder = &coreBuilder{}
	}
	return i.coreBuilder
}

// WithEngine sets the token engine secrets are checked with (REQUIRED).
//
// Example:
//
//	interceptor, _ := secretsgrpc.New(
//	    secretsgrpc.WithEngine(engine),
//	    secretsgrpc.WithLogger(logger),
//	)
func WithEngine(e *token.Engine) Option {
	return func(i *SecretInterceptor) error {
		if e == nil {
			return errors.New("engine cannot be nil")
		}
		i.builder().engine = e
		return nil
	}
}

// WithCredentialsOptional allows requests without a secret to proceed.
// When set to true, such requests will not return an error,
// but the context will not contain any secret.
//
// Default: false (credentials required)
func WithCredentialsOptional(optional bool) Option {
	return func(i *SecretInterceptor) error {
		i.builder().credentialsOptional = &optional
		return nil
	}
}

// WithFormats restricts the accepted secret shapes.
//
// Default: core.FormatAny
func WithFormats(formats core.Format) Option {
	return func(i *SecretInterceptor) error {
		i.builder().formats = &formats
		return nil
	}
}

// WithPrefixCheck sets whether secrets must carry the engine's prefix.
//
// Default: true
func WithPrefixCheck(check bool) Option {
	return func(i *SecretInterceptor) error {
		i.builder().prefixCheck = &check
		return nil
	}
}

// WithLogger sets an optional logger for the interceptor.
// The logger will be used throughout the checking flow in both interceptor and core.
func WithLogger(logger Logger) Option {
	return func(i *SecretInterceptor) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		i.builder().logger = logger
		i.logger = logger
		return nil
	}
}

// WithTokenExtractor sets a custom token extractor function.
// Default is MetadataTokenExtractor which extracts from "authorization" metadata.
func WithTokenExtractor(extractor TokenExtractor) Option {
	return func(i *SecretInterceptor) error {
		if extractor == nil {
			return errors.New("token extractor cannot be nil")
		}
		i.tokenExtractor = extractor
		return nil
	}
}

// WithErrorHandler sets a custom error handler function.
// Default is DefaultErrorHandler which maps errors to gRPC status codes.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(i *SecretInterceptor) error {
		if handler == nil {
			return errors.New("error handler cannot be nil")
		}
		i.errorHandler = handler
		return nil
	}
}

// WithExcludedMethods excludes specific gRPC methods from secret checking.
// Methods should be provided in the format: "/package.Service/Method"
// Example: "/myapp.MyService/PublicMethod", "/grpc.health.v1.Health/Check"
func WithExcludedMethods(methods ...string) Option {
	return func(i *SecretInterceptor) error {
		for _, method := range methods {
			i.excludedMethods[method] = true
		}
		return nil
	}
}
