package sssecretsgin

import (
	"github.com/gin-gonic/gin"

	"github.com/sssecrets/go-sssecrets"
)

// Option defines a functional option for configuring the middleware
type Option func(*GinMiddlewareConfig)

// WithErrorHandler sets a custom error handler for the middleware
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(config *GinMiddlewareConfig) {
		config.errorHandler = handler
	}
}

// WithContextKey sets the Gin context key the secret is stored under
func WithContextKey(key string) Option {
	return func(config *GinMiddlewareConfig) {
		config.contextKey = key
	}
}

// WithTokenExtractor sets a custom token extractor
func WithTokenExtractor(extractor sssecrets.TokenExtractor) Option {
	return func(config *GinMiddlewareConfig) {
		config.tokenExtractor = extractor
	}
}

// WithMiddlewareOptions passes options through to the underlying sssecrets.Middleware,
// e.g. sssecrets.WithCredentialsOptional or sssecrets.WithLogger.
func WithMiddlewareOptions(opts ...sssecrets.Option) Option {
	return func(config *GinMiddlewareConfig) {
		config.middlewareOptions = append(config.middlewareOptions, opts...)
	}
}
