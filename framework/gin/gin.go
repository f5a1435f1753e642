// Package sssecretsgin adapts the sssecrets middleware to the Gin framework.
package sssecretsgin

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sssecrets/go-sssecrets"
	"github.com/sssecrets/go-sssecrets/token"
)

const DefaultSecretKey = "secret"

var (
	ErrMissingSecret = errors.New("no secret found in context")
	ErrInvalidSecret = errors.New("invalid secret type in context")
)

// ginContextKey carries the *gin.Context to the error handler.
type ginContextKey struct{}

type GinMiddlewareConfig struct {
	errorHandler      func(*gin.Context, error)
	contextKey        string
	tokenExtractor    sssecrets.TokenExtractor
	middlewareOptions []sssecrets.Option
}

// NewGinMiddleware creates a Gin middleware that checks structured secrets
// issued by engine. The checked secret is stored in the Gin context under
// DefaultSecretKey (see WithContextKey) and in the request context.
func NewGinMiddleware(engine *token.Engine, opts ...Option) (gin.HandlerFunc, error) {
	config := &GinMiddlewareConfig{
		errorHandler: defaultGinErrorHandler,
		contextKey:   DefaultSecretKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	middlewareOpts := []sssecrets.Option{
		sssecrets.WithEngine(engine),
		sssecrets.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			c, exists := r.Context().Value(ginContextKey{}).(*gin.Context)
			if !exists || c == nil {
				sssecrets.DefaultErrorHandler(w, r, err)
				return
			}
			config.errorHandler(c, err)
		}),
	}

	if config.tokenExtractor != nil {
		middlewareOpts = append(middlewareOpts, sssecrets.WithTokenExtractor(config.tokenExtractor))
	}
	middlewareOpts = append(middlewareOpts, config.middlewareOptions...)

	middleware, err := sssecrets.New(middlewareOpts...)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.Request = r

			if secret, err := sssecrets.GetSecret(r.Context()); err == nil {
				c.Set(config.contextKey, secret)
			}

			c.Next()
		}

		r := c.Request.WithContext(context.WithValue(c.Request.Context(), ginContextKey{}, c))
		middleware.CheckSecret(handler).ServeHTTP(c.Writer, r)

		if encounteredError {
			c.Abort()
		}
	}, nil
}

func defaultGinErrorHandler(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong while checking the secret."
	switch {
	case errors.Is(err, sssecrets.ErrSecretMissing):
		status, message = http.StatusBadRequest, "Secret is missing."
	case errors.Is(err, sssecrets.ErrSecretInvalid):
		status, message = http.StatusUnauthorized, "Secret is invalid."
	}
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// GetSecret returns the secret stored by the middleware under contextKey.
// An empty contextKey means DefaultSecretKey.
func GetSecret(c *gin.Context, contextKey string) (*token.Secret, error) {
	if contextKey == "" {
		contextKey = DefaultSecretKey
	}
	value, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingSecret
	}

	secret, ok := value.(*token.Secret)
	if !ok {
		return nil, ErrInvalidSecret
	}

	return secret, nil
}
