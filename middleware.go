package sssecrets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sssecrets/go-sssecrets/core"
	"github.com/sssecrets/go-sssecrets/token"
)

// Metric names recorded by the middleware.
const (
	MetricChecksTotal   = "sssecrets_checks_total"
	MetricCheckDuration = "sssecrets_check_duration_seconds"
)

// Middleware checks structured secrets presented with HTTP requests.
type Middleware struct {
	core                *core.Core
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	validateOnOptions   bool
	exclusionURLHandler ExclusionURLHandler
	logger              Logger
	metrics             Metrics
	tracer              Tracer

	// Temporary fields used during construction
	engine              *token.Engine
	credentialsOptional bool
	formats             core.Format
	prefixCheck         bool
}

// Logger defines an optional logging interface compatible with log/slog.
// This is the same interface used by core for consistent logging across the stack.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should be excluded from secret checking.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a new Middleware instance with the supplied options.
//
// Example:
//
//	engine, err := token.New("acme", "pat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	middleware, err := sssecrets.New(
//	    sssecrets.WithEngine(engine),
//	    sssecrets.WithCredentialsOptional(false),
//	)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		validateOnOptions:   true,
		credentialsOptional: false,
		formats:             core.FormatAny,
		prefixCheck:         true,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid middleware configuration: %w", err)
	}

	m.applyDefaults()

	if err := m.createCore(); err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	return m, nil
}

// validate ensures all required fields are set
func (m *Middleware) validate() error {
	if m.engine == nil {
		return ErrEngineNil
	}
	return nil
}

// createCore creates the core.Core instance with the configured options
func (m *Middleware) createCore() error {
	coreOpts := []core.Option{
		core.WithEngine(m.engine),
		core.WithCredentialsOptional(m.credentialsOptional),
		core.WithFormats(m.formats),
		core.WithPrefixCheck(m.prefixCheck),
	}

	if m.logger != nil {
		coreOpts = append(coreOpts, core.WithLogger(m.logger))
	}

	coreInstance, err := core.New(coreOpts...)
	if err != nil {
		return err
	}
	m.core = coreInstance
	return nil
}

// applyDefaults sets secure default values for optional fields
func (m *Middleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.tokenExtractor == nil {
		m.tokenExtractor = AuthHeaderTokenExtractor
	}
	if m.metrics == nil {
		m.metrics = &NoopMetrics{}
	}
	if m.tracer == nil {
		m.tracer = &NoopTracer{}
	}
}

// GetSecret retrieves the checked secret from the request context.
//
// Example:
//
//	secret, err := sssecrets.GetSecret(r.Context())
//	if err != nil {
//	    http.Error(w, "failed to get secret", http.StatusInternalServerError)
//	    return
//	}
//	fmt.Println(secret.Prefix)
func GetSecret(ctx context.Context) (*token.Secret, error) {
	return core.GetSecret(ctx)
}

// MustGetSecret retrieves the secret from the context or panics.
// Use only when you are certain a secret exists (e.g., after the middleware has run
// with credentials required).
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

// CheckSecret is the main Middleware function which performs the main logic. It
// is passed a http.Handler which will be called if the secret passes checking.
func (m *Middleware) CheckSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
			if m.logger != nil {
				m.logger.Debug("skipping secret check for excluded URL",
					"method", r.Method,
					"path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}
		// If we don't validate on OPTIONS and this is OPTIONS
		// then continue onto next without checking.
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			if m.logger != nil {
				m.logger.Debug("skipping secret check for OPTIONS request")
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.StartSpan(r.Context(), "sssecrets.CheckSecret")
		defer span.Finish()
		span.SetTag("http.method", r.Method)

		start := time.Now()
		raw, err := m.tokenExtractor(r)
		if err != nil {
			// This is not ErrSecretMissing because an error here means that the
			// tokenExtractor had an error and _not_ that the secret was missing.
			if m.logger != nil {
				m.logger.Error("failed to extract secret from request",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.record(span, "extract_error", start)
			span.RecordError(err)
			m.errorHandler(w, r, fmt.Errorf("error extracting secret: %w", err))
			return
		}

		secret, err := m.core.CheckSecret(ctx, raw)
		if err != nil {
			if m.logger != nil {
				m.logger.Warn("secret check failed",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.record(span, core.Code(err), start)
			span.RecordError(err)
			m.errorHandler(w, r, err)
			return
		}

		// If credentials are optional and no secret was provided,
		// core.CheckSecret returns (nil, nil), so we continue without setting it.
		if secret == nil {
			if m.logger != nil {
				m.logger.Debug("no credentials provided, continuing without secret (credentials optional)")
			}
			m.record(span, "absent", start)
			next.ServeHTTP(w, r)
			return
		}

		span.SetTag("secret.kind", secret.Kind.String())
		m.record(span, "valid", start)
		r = r.Clone(core.SetSecret(r.Context(), secret))
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) record(span Span, result string, start time.Time) {
	if result == "" {
		result = "error"
	}
	tags := map[string]string{"result": result}
	m.metrics.IncCounter(MetricChecksTotal, tags)
	m.metrics.ObserveHistogram(MetricCheckDuration, time.Since(start).Seconds(), tags)
	span.SetTag("secret.result", result)
}
