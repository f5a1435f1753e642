// Package sssecretsecho adapts the sssecrets middleware to the Echo framework.
package sssecretsecho

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sssecrets/go-sssecrets"
	"github.com/sssecrets/go-sssecrets/token"
)

var DefaultSecretKey = "secret"

// echoContextKey carries the echo.Context to the error handler.
type echoContextKey struct{}

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler      func(echo.Context, error) error
	contextKey        string
	tokenExtractor    sssecrets.TokenExtractor
	middlewareOptions []sssecrets.Option
}

// NewEchoMiddleware creates an Echo middleware that checks structured secrets issued by engine.
func NewEchoMiddleware(engine *token.Engine, opts ...Option) (echo.MiddlewareFunc, error) {
	config := &echoMiddlewareConfig{
		errorHandler: defaultEchoErrorHandler,
		contextKey:   DefaultSecretKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	middlewareOpts := []sssecrets.Option{
		sssecrets.WithEngine(engine),
		sssecrets.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			c, ok := r.Context().Value(echoContextKey{}).(echo.Context)
			if !ok {
				sssecrets.DefaultErrorHandler(w, r, err)
				return
			}
			if herr := config.errorHandler(c, err); herr != nil {
				c.Error(herr)
			}
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

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var nextErr error
			var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)

				if secret, err := sssecrets.GetSecret(r.Context()); err == nil {
					c.Set(config.contextKey, secret)
				}

				nextErr = next(c)
			}

			r := c.Request().WithContext(context.WithValue(c.Request().Context(), echoContextKey{}, c))
			middleware.CheckSecret(handler).ServeHTTP(c.Response(), r)

			return nextErr
		}
	}, nil
}

func defaultEchoErrorHandler(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sssecrets.ErrSecretMissing):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Secret is missing."})
	case errors.Is(err, sssecrets.ErrSecretInvalid):
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Secret is invalid."})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Something went wrong while checking the secret."})
	}
}

// GetSecret extracts the secret from the Echo context
func GetSecret(c echo.Context, contextKey string) (*token.Secret, bool) {
	value := c.Get(contextKey)
	if value == nil {
		return nil, false
	}

	secret, ok := value.(*token.Secret)
	return secret, ok
}
