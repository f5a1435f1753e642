package sssecrets

import (
	"errors"
	"net/http"

	"github.com/sssecrets/go-sssecrets/core"
	"github.com/sssecrets/go-sssecrets/token"
)

// Option configures the Middleware.
// Returns error for validation failures.
type Option func(*Middleware) error

// WithEngine sets the token engine secrets are checked with (REQUIRED).
//
// Example:
//
//	engine, err := token.New("acme", "pat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	middleware, err := sssecrets.New(
//	    sssecrets.WithEngine(engine),
//	)
func WithEngine(e *token.Engine) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrEngineNil
		}
		m.engine = e
		return nil
	}
}

// WithCredentialsOptional sets whether credentials are optional.
// If set to true, a request without a secret is passed through unchecked.
//
// Default: false (credentials required)
func WithCredentialsOptional(value bool) Option {
	return func(m *Middleware) error {
		m.credentialsOptional = value
		return nil
	}
}

// WithFormats restricts the accepted secret shapes.
//
// Default: core.FormatAny
func WithFormats(formats core.Format) Option {
	return func(m *Middleware) error {
		m.formats = formats
		return nil
	}
}

// WithPrefixCheck sets whether secrets must carry the engine's prefix.
//
// Default: true
func WithPrefixCheck(value bool) Option {
	return func(m *Middleware) error {
		m.prefixCheck = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their secret checked.
//
// Default: true (OPTIONS requests are checked)
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when errors occur during secret checking.
// See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets the function to extract the secret from the request.
//
// Default: AuthHeaderTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithExclusionUrls configures URL patterns to exclude from secret checking.
// URLs can be full URLs or just paths.
func WithExclusionUrls(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionUrlsEmpty
		}
		m.exclusionURLHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithExclusionUrlHandler sets a custom function deciding which requests skip checking.
func WithExclusionUrlHandler(h ExclusionURLHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrExclusionHandlerNil
		}
		m.exclusionURLHandler = h
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
// The logger will be used throughout the checking flow in both middleware and core.
//
// Example:
//
//	middleware, err := sssecrets.New(
//	    sssecrets.WithEngine(engine),
//	    sssecrets.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics sets where check results and durations are recorded.
//
// Default: NoopMetrics
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer used to wrap each check in a span.
//
// Default: NoopTracer
func WithTracer(tracer Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return ErrTracerNil
		}
		m.tracer = tracer
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrEngineNil           = errors.New("engine cannot be nil (use WithEngine)")
	ErrErrorHandlerNil     = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil   = errors.New("tokenExtractor cannot be nil")
	ErrExclusionUrlsEmpty  = errors.New("exclusion URLs list cannot be empty")
	ErrExclusionHandlerNil = errors.New("exclusion URL handler cannot be nil")
	ErrLoggerNil           = errors.New("logger cannot be nil")
	ErrMetricsNil          = errors.New("metrics cannot be nil")
	ErrTracerNil           = errors.New("tracer cannot be nil")
)
