package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssecrets/go-sssecrets/core"
)

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "no engine", opts: nil, wantErr: "token engine is required"},
		{name: "nil engine", opts: []Option{WithEngine(nil)}, wantErr: "engine cannot be nil"},
		{name: "nil logger", opts: []Option{WithEngine(testEngine(t)), WithLogger(nil)}, wantErr: "logger cannot be nil"},
		{name: "nil extractor", opts: []Option{WithEngine(testEngine(t)), WithTokenExtractor(nil)}, wantErr: "token extractor cannot be nil"},
		{name: "nil error handler", opts: []Option{WithEngine(testEngine(t)), WithErrorHandler(nil)}, wantErr: "error handler cannot be nil"},
		{name: "invalid formats", opts: []Option{WithEngine(testEngine(t)), WithFormats(core.Format(8))}, wantErr: "formats must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptions(t *testing.T) {
	engine := testEngine(t)
	extractor := func(context.Context) (string, error) { return "", nil }

	interceptor, err := New(
		WithEngine(engine),
		WithCredentialsOptional(true),
		WithFormats(core.FormatToken),
		WithPrefixCheck(false),
		WithTokenExtractor(extractor),
		WithExcludedMethods("/a.B/C", "/a.B/D"),
	)
	require.NoError(t, err)

	assert.Same(t, engine, interceptor.core.Engine())
	assert.NotNil(t, interceptor.tokenExtractor)
	assert.True(t, interceptor.excludedMethods["/a.B/C"])
	assert.True(t, interceptor.excludedMethods["/a.B/D"])
	assert.False(t, interceptor.excludedMethods["/a.B/E"])

	secret, err := interceptor.core.CheckSecret(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, secret)
}
