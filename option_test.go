package sssecrets

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssecrets/go-sssecrets/core"
)

func TestOptions_NilValues(t *testing.T) {
	tests := []struct {
		name    string
		option  Option
		wantErr error
	}{
		{name: "engine", option: WithEngine(nil), wantErr: ErrEngineNil},
		{name: "error handler", option: WithErrorHandler(nil), wantErr: ErrErrorHandlerNil},
		{name: "token extractor", option: WithTokenExtractor(nil), wantErr: ErrTokenExtractorNil},
		{name: "exclusion urls", option: WithExclusionUrls(nil), wantErr: ErrExclusionUrlsEmpty},
		{name: "exclusion handler", option: WithExclusionUrlHandler(nil), wantErr: ErrExclusionHandlerNil},
		{name: "logger", option: WithLogger(nil), wantErr: ErrLoggerNil},
		{name: "metrics", option: WithMetrics(nil), wantErr: ErrMetricsNil},
		{name: "tracer", option: WithTracer(nil), wantErr: ErrTracerNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.option(&Middleware{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOptions_Apply(t *testing.T) {
	engine := testEngine(t)
	logger := &recordingLogger{}
	metrics := &NoopMetrics{}
	tracer := &NoopTracer{}

	m, err := New(
		WithEngine(engine),
		WithCredentialsOptional(true),
		WithFormats(core.FormatHeader),
		WithPrefixCheck(false),
		WithValidateOnOptions(false),
		WithLogger(logger),
		WithMetrics(metrics),
		WithTracer(tracer),
	)
	require.NoError(t, err)

	assert.Same(t, engine, m.engine)
	assert.True(t, m.credentialsOptional)
	assert.Equal(t, core.FormatHeader, m.formats)
	assert.False(t, m.prefixCheck)
	assert.False(t, m.validateOnOptions)
	assert.Same(t, logger, m.logger)
	assert.Same(t, metrics, m.metrics)
	assert.Same(t, tracer, m.tracer)
	assert.Same(t, engine, m.core.Engine())
}

func TestOptions_Defaults(t *testing.T) {
	m, err := New(WithEngine(testEngine(t)))
	require.NoError(t, err)

	assert.False(t, m.credentialsOptional)
	assert.Equal(t, core.FormatAny, m.formats)
	assert.True(t, m.prefixCheck)
	assert.True(t, m.validateOnOptions)
	assert.Nil(t, m.logger)
	assert.IsType(t, &NoopMetrics{}, m.metrics)
	assert.IsType(t, &NoopTracer{}, m.tracer)
	assert.NotNil(t, m.errorHandler)
	assert.NotNil(t, m.tokenExtractor)
}

func TestWithExclusionUrls(t *testing.T) {
	m := &Middleware{}
	require.NoError(t, WithExclusionUrls([]string{"/health", "http://example.com/public"})(m))

	tests := []struct {
		url  string
		want bool
	}{
		{url: "http://example.com/health", want: true},
		{url: "http://other.example.com/health", want: true},
		{url: "http://example.com/public", want: true},
		{url: "http://other.example.com/public", want: false},
		{url: "http://example.com/private", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			assert.Equal(t, tt.want, m.exclusionURLHandler(r))
		})
	}
}

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.entries = append(l.entries, "DEBUG "+msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.entries = append(l.entries, "INFO "+msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.entries = append(l.entries, "WARN "+msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.entries = append(l.entries, "ERROR "+msg) }
