package core

import (
	"errors"

	"github.com/sssecrets/go-sssecrets/token"
)

// Option is a function that configures the Core.
// Options return errors to enable validation during construction.
type Option func(*Core) error

// New creates a new Core instance with the provided options.
//
// The Core must be configured with a token engine using WithEngine.
// All other options are optional and will use sensible defaults if not provided.
//
// Example:
//
//	engine, _ := token.New("acme", "pat")
//	c, err := core.New(
//	    core.WithEngine(engine),
//	    core.WithCredentialsOptional(true),
//	    core.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Core, error) {
	c := &Core{
		credentialsOptional: false, // Secure default: require credentials
		formats:             FormatAny,
		prefixCheck:         true,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate ensures all required fields are set.
func (c *Core) validate() error {
	if c.engine == nil {
		return NewValidationError(
			ErrorCodeEngineNotSet,
			"token engine is required but not set (use WithEngine option)",
			nil,
		)
	}
	return nil
}

// WithEngine sets the token engine secrets are parsed with. This is a required option.
func WithEngine(engine *token.Engine) Option {
	return func(c *Core) error {
		if engine == nil {
			return errors.New("engine cannot be nil")
		}
		c.engine = engine
		return nil
	}
}

// WithCredentialsOptional configures whether credentials are optional.
//
// When set to true, requests without a secret will be allowed to proceed
// without checking. The secret will be nil in the context.
//
// When set to false (default), requests without a secret will return ErrSecretMissing.
func WithCredentialsOptional(optional bool) Option {
	return func(c *Core) error {
		c.credentialsOptional = optional
		return nil
	}
}

// WithLogger sets an optional logger for the Core.
//
// Example:
//
//	c, _ := core.New(
//	    core.WithEngine(engine),
//	    core.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(c *Core) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithFormats restricts the secret shapes that are accepted.
//
// Formats:
//   - FormatAny (default): accept both tokens and headers
//   - FormatToken: only generated tokens
//   - FormatHeader: only header-wrapped payloads
func WithFormats(formats Format) Option {
	return func(c *Core) error {
		if !formats.valid() {
			return errors.New("formats must be FormatToken, FormatHeader or FormatAny")
		}
		c.formats = formats
		return nil
	}
}

// WithPrefixCheck configures whether secrets must carry the engine's own prefix.
//
// Default: true. Disable it to accept any well-formed secret regardless of issuer.
func WithPrefixCheck(check bool) Option {
	return func(c *Core) error {
		c.prefixCheck = check
		return nil
	}
}
