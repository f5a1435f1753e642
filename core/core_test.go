package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssecrets/go-sssecrets/token"
)

const (
	validToken  = "tk_GUkLdIZV8xnQQZobkuynSyyPkcweVm14nosQ"
	validHeader = "tk_1e6YXE_5be426ee126b88f9587bbbe767a7592c"
)

// mockLogger is a mock implementation of Logger for testing.
type mockLogger struct {
	debugCalls []logCall
	infoCalls  []logCall
	warnCalls  []logCall
	errorCalls []logCall
}

type logCall struct {
	msg  string
	args []any
}

func (m *mockLogger) Debug(msg string, args ...any) {
	m.debugCalls = append(m.debugCalls, logCall{msg, args})
}

func (m *mockLogger) Info(msg string, args ...any) {
	m.infoCalls = append(m.infoCalls, logCall{msg, args})
}

func (m *mockLogger) Warn(msg string, args ...any) {
	m.warnCalls = append(m.warnCalls, logCall{msg, args})
}

func (m *mockLogger) Error(msg string, args ...any) {
	m.errorCalls = append(m.errorCalls, logCall{msg, args})
}

func newEngine(t *testing.T) *token.Engine {
	t.Helper()
	engine, err := token.New("t", "k")
	require.NoError(t, err)
	return engine
}

func TestNew(t *testing.T) {
	engine := newEngine(t)

	t.Run("successful creation with required options", func(t *testing.T) {
		core, err := New(WithEngine(engine))
		require.NoError(t, err)
		assert.NotNil(t, core)
		assert.False(t, core.credentialsOptional)
		assert.True(t, core.prefixCheck)
		assert.Equal(t, FormatAny, core.formats)
		assert.Same(t, engine, core.Engine())
	})

	t.Run("successful creation with all options", func(t *testing.T) {
		logger := &mockLogger{}
		core, err := New(
			WithEngine(engine),
			WithCredentialsOptional(true),
			WithLogger(logger),
			WithFormats(FormatHeader),
			WithPrefixCheck(false),
		)
		require.NoError(t, err)
		assert.True(t, core.credentialsOptional)
		assert.False(t, core.prefixCheck)
		assert.Equal(t, FormatHeader, core.formats)
		assert.NotNil(t, core.logger)
	})

	t.Run("error when engine is missing", func(t *testing.T) {
		core, err := New()
		assert.Error(t, err)
		assert.Nil(t, core)
		assert.Contains(t, err.Error(), "token engine is required")
		assert.Equal(t, ErrorCodeEngineNotSet, Code(err))
	})

	t.Run("error when engine is nil", func(t *testing.T) {
		core, err := New(WithEngine(nil))
		assert.Nil(t, core)
		assert.ErrorContains(t, err, "engine cannot be nil")
	})

	t.Run("error when logger is nil", func(t *testing.T) {
		core, err := New(WithEngine(engine), WithLogger(nil))
		assert.Nil(t, core)
		assert.ErrorContains(t, err, "logger cannot be nil")
	})

	t.Run("error when formats are empty or unknown", func(t *testing.T) {
		_, err := New(WithEngine(engine), WithFormats(0))
		assert.ErrorContains(t, err, "formats must be")

		_, err = New(WithEngine(engine), WithFormats(Format(8)))
		assert.ErrorContains(t, err, "formats must be")
	})
}

func TestCore_CheckSecret(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	t.Run("it accepts a token", func(t *testing.T) {
		core, err := New(WithEngine(engine))
		require.NoError(t, err)

		secret, err := core.CheckSecret(ctx, validToken)
		require.NoError(t, err)
		assert.Equal(t, token.KindToken, secret.Kind)
		assert.Equal(t, "GUkLdIZV8xnQQZobkuynSyyPkcweVm", secret.Payload)
	})

	t.Run("it accepts a header", func(t *testing.T) {
		core, err := New(WithEngine(engine))
		require.NoError(t, err)

		secret, err := core.CheckSecret(ctx, validHeader)
		require.NoError(t, err)
		assert.Equal(t, token.KindHeader, secret.Kind)
		assert.Equal(t, "5be426ee126b88f9587bbbe767a7592c", secret.Payload)
	})

	t.Run("empty secret with credentials required", func(t *testing.T) {
		core, err := New(WithEngine(engine), WithCredentialsOptional(false))
		require.NoError(t, err)

		secret, err := core.CheckSecret(ctx, "")
		assert.ErrorIs(t, err, ErrSecretMissing)
		assert.Nil(t, secret)
		assert.Equal(t, ErrorCodeSecretMissing, Code(err))
	})

	t.Run("empty secret with credentials optional", func(t *testing.T) {
		core, err := New(WithEngine(engine), WithCredentialsOptional(true))
		require.NoError(t, err)

		secret, err := core.CheckSecret(ctx, "")
		assert.NoError(t, err)
		assert.Nil(t, secret)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		core, err := New(WithEngine(engine))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, "tk_GUkLdIZV8xnQQZobkuynSyyPkcweVm14nosR")
		assert.ErrorIs(t, err, ErrSecretInvalid)
		assert.ErrorIs(t, err, token.ErrChecksumMismatch)
		assert.Equal(t, ErrorCodeChecksumMismatch, Code(err))
	})

	t.Run("malformed secret", func(t *testing.T) {
		core, err := New(WithEngine(engine))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, "not-a-secret")
		assert.ErrorIs(t, err, ErrSecretInvalid)
		assert.ErrorIs(t, err, token.ErrMalformed)
		assert.Equal(t, ErrorCodeSecretMalformed, Code(err))
	})

	t.Run("foreign prefix is rejected by default", func(t *testing.T) {
		other, err := token.New("ghp", "")
		require.NoError(t, err)
		raw, err := other.Generate()
		require.NoError(t, err)

		core, err := New(WithEngine(engine))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, raw)
		assert.ErrorIs(t, err, ErrSecretInvalid)
		assert.Equal(t, ErrorCodePrefixMismatch, Code(err))
	})

	t.Run("foreign prefix is accepted without prefix check", func(t *testing.T) {
		other, err := token.New("ghp", "")
		require.NoError(t, err)

		core, err := New(WithEngine(engine), WithPrefixCheck(false))
		require.NoError(t, err)

		secret, err := core.CheckSecret(ctx, other.GenerateHeader("opaque"))
		require.NoError(t, err)
		assert.Equal(t, "ghp", secret.Prefix)
	})

	t.Run("token only rejects headers", func(t *testing.T) {
		core, err := New(WithEngine(engine), WithFormats(FormatToken))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, validHeader)
		assert.Equal(t, ErrorCodeFormatNotAllowed, Code(err))
		assert.ErrorContains(t, err, "header format")

		_, err = core.CheckSecret(ctx, validToken)
		assert.NoError(t, err)
	})

	t.Run("header only rejects tokens", func(t *testing.T) {
		core, err := New(WithEngine(engine), WithFormats(FormatHeader))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, validToken)
		assert.Equal(t, ErrorCodeFormatNotAllowed, Code(err))

		_, err = core.CheckSecret(ctx, validHeader)
		assert.NoError(t, err)
	})

	t.Run("with logger - success", func(t *testing.T) {
		logger := &mockLogger{}
		core, err := New(WithEngine(engine), WithLogger(logger))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, validToken)
		require.NoError(t, err)

		require.Len(t, logger.debugCalls, 1)
		assert.Contains(t, logger.debugCalls[0].msg, "validated successfully")
		assert.Contains(t, logger.debugCalls[0].args, "tk_[REDACTED]14nosQ")
		assert.NotContains(t, logger.debugCalls[0].args, validToken)
	})

	t.Run("with logger - failure", func(t *testing.T) {
		logger := &mockLogger{}
		core, err := New(WithEngine(engine), WithLogger(logger))
		require.NoError(t, err)

		_, err = core.CheckSecret(ctx, "garbage")
		require.Error(t, err)
		require.Len(t, logger.errorCalls, 1)
		assert.Contains(t, logger.errorCalls[0].msg, "validation failed")
	})

	t.Run("with logger - missing secret", func(t *testing.T) {
		logger := &mockLogger{}
		core, err := New(WithEngine(engine), WithLogger(logger))
		require.NoError(t, err)

		_, _ = core.CheckSecret(ctx, "")
		require.Len(t, logger.warnCalls, 1)
		assert.Contains(t, logger.warnCalls[0].msg, "credentials are required")
	})

	t.Run("with logger - credentials optional", func(t *testing.T) {
		logger := &mockLogger{}
		core, err := New(WithEngine(engine), WithLogger(logger), WithCredentialsOptional(true))
		require.NoError(t, err)

		_, _ = core.CheckSecret(ctx, "")
		require.Len(t, logger.debugCalls, 1)
		assert.Contains(t, logger.debugCalls[0].msg, "credentials are optional")
	})
}

func TestContextHelpers(t *testing.T) {
	engine := newEngine(t)
	secret, err := engine.Parse(validToken)
	require.NoError(t, err)

	t.Run("SetSecret and GetSecret", func(t *testing.T) {
		ctx := SetSecret(context.Background(), secret)

		retrieved, err := GetSecret(ctx)
		assert.NoError(t, err)
		assert.Same(t, secret, retrieved)
		assert.True(t, HasSecret(ctx))
	})

	t.Run("GetSecret from empty context", func(t *testing.T) {
		retrieved, err := GetSecret(context.Background())
		assert.Nil(t, retrieved)
		assert.Equal(t, ErrSecretNotFound, err)
		assert.False(t, HasSecret(context.Background()))
	})

	t.Run("GetSecret with a nil secret", func(t *testing.T) {
		ctx := SetSecret(context.Background(), nil)

		retrieved, err := GetSecret(ctx)
		assert.Nil(t, retrieved)
		assert.ErrorContains(t, err, "type assertion failed")
		assert.False(t, HasSecret(ctx))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("error message with details", func(t *testing.T) {
		details := errors.New("crc differs")
		err := NewValidationError(ErrorCodeChecksumMismatch, "secret checksum does not match", details)

		assert.Equal(t, "secret checksum does not match: crc differs", err.Error())
	})

	t.Run("error message without details", func(t *testing.T) {
		err := NewValidationError(ErrorCodeSecretMissing, "secret is missing", nil)
		assert.Equal(t, "secret is missing", err.Error())
	})

	t.Run("Unwrap returns details", func(t *testing.T) {
		details := errors.New("underlying error")
		err := NewValidationError(ErrorCodeSecretMalformed, "validation failed", details)
		assert.Equal(t, details, errors.Unwrap(err))
	})

	t.Run("Is works with ErrSecretInvalid", func(t *testing.T) {
		err := NewValidationError(ErrorCodePrefixMismatch, "wrong prefix", nil)
		assert.True(t, errors.Is(err, ErrSecretInvalid))
		assert.False(t, errors.Is(err, ErrSecretMissing))
	})

	t.Run("Code of a plain error is empty", func(t *testing.T) {
		assert.Equal(t, "", Code(errors.New("boom")))
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "FormatToken", FormatToken.String())
	assert.Equal(t, "FormatHeader", FormatHeader.String())
	assert.Equal(t, "FormatAny", FormatAny.String())
	assert.Equal(t, "Format(8)", Format(8).String())

	assert.True(t, FormatAny.Allows(token.KindToken))
	assert.True(t, FormatAny.Allows(token.KindHeader))
	assert.False(t, FormatToken.Allows(token.KindHeader))
	assert.False(t, FormatHeader.Allows(token.KindToken))
	assert.False(t, FormatAny.Allows(token.Kind(0)))
}
