package core

import (
	"context"
	"errors"
	"time"

	"github.com/sssecrets/go-sssecrets/token"
)

// Logger defines an optional logging interface for the core.
// It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core is the framework-agnostic structured secret checker.
// It contains the logic for parsing and verifying secrets without any
// dependency on specific transport protocols (HTTP, gRPC, etc.).
type Core struct {
	engine              *token.Engine
	credentialsOptional bool
	logger              Logger
	formats             Format
	prefixCheck         bool
}

// CheckSecret parses raw as a structured secret and verifies its checksum.
//
// This is the core checking logic that is framework-agnostic:
//   - If raw is empty and credentialsOptional is true, returns (nil, nil)
//   - If raw is empty and credentialsOptional is false, returns ErrSecretMissing
//   - Otherwise, parses raw in the allowed formats and, when prefix checking is on,
//     requires the engine's own prefix
//
// Whether the returned secret was actually issued is for the caller to decide.
func (c *Core) CheckSecret(ctx context.Context, raw string) (*token.Secret, error) {
	if raw == "" {
		if c.credentialsOptional {
			if c.logger != nil {
				c.logger.Debug("No secret provided, but credentials are optional")
			}
			return nil, nil
		}

		if c.logger != nil {
			c.logger.Warn("No secret provided and credentials are required")
		}

		return nil, ErrSecretMissing
	}

	start := time.Now()
	secret, err := c.parse(raw)
	duration := time.Since(start)

	if err != nil {
		if c.logger != nil {
			c.logger.Error("Secret validation failed", "error", err, "duration", duration)
		}
		return nil, err
	}

	if c.prefixCheck && !c.engine.HasPrefix(secret) {
		if c.logger != nil {
			c.logger.Warn("Secret issued under a different prefix",
				"secret", secret.String(),
				"expected_prefix", c.engine.Prefix())
		}
		return nil, NewValidationError(
			ErrorCodePrefixMismatch,
			"secret was not issued under the expected prefix",
			nil,
		)
	}

	if c.logger != nil {
		c.logger.Debug("Secret validated successfully",
			"kind", secret.Kind.String(),
			"secret", secret.String(),
			"duration", duration)
	}

	return secret, nil
}

// parse tries each allowed format in turn. A checksum mismatch in any format is
// reported in preference to a malformed error, since it means the shape matched.
func (c *Core) parse(raw string) (*token.Secret, error) {
	var errs []error

	if c.formats.Allows(token.KindToken) {
		secret, err := c.engine.Parse(raw)
		if err == nil {
			return secret, nil
		}
		errs = append(errs, err)
	}

	if c.formats.Allows(token.KindHeader) {
		secret, err := c.engine.ParseHeader(raw)
		if err == nil {
			return secret, nil
		}
		errs = append(errs, err)
	}

	for _, err := range errs {
		if errors.Is(err, token.ErrChecksumMismatch) {
			return nil, NewValidationError(
				ErrorCodeChecksumMismatch,
				"secret checksum does not match its payload",
				err,
			)
		}
	}

	if kind, ok := c.disallowedKind(raw); ok {
		return nil, NewValidationError(
			ErrorCodeFormatNotAllowed,
			"secrets in "+kind.String()+" format are not accepted",
			nil,
		)
	}

	return nil, NewValidationError(
		ErrorCodeSecretMalformed,
		"secret is not a structured token or header",
		errors.Join(errs...),
	)
}

// disallowedKind reports the format raw would have parsed as had it been allowed.
func (c *Core) disallowedKind(raw string) (token.Kind, bool) {
	if !c.formats.Allows(token.KindToken) {
		if _, err := c.engine.Parse(raw); err == nil {
			return token.KindToken, true
		}
	}
	if !c.formats.Allows(token.KindHeader) {
		if _, err := c.engine.ParseHeader(raw); err == nil {
			return token.KindHeader, true
		}
	}
	return 0, false
}

// Engine returns the token engine secrets are checked against.
func (c *Core) Engine() *token.Engine {
	return c.engine
}
