package sssecrets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracer(t *testing.T) {
	tracer := &NoopTracer{}
	ctx := context.Background()

	gotCtx, span := tracer.StartSpan(ctx, "test_span")
	assert.Equal(t, ctx, gotCtx)

	_, ok := span.(*NoopSpan)
	assert.True(t, ok, "Should return a NoopSpan")

	span.SetTag("tag", "value")
	span.RecordError(errors.New("boom"))
	span.Finish()
}

func TestOpenTelemetryTracer(t *testing.T) {
	tracer := NewOpenTelemetryTracer(noop.NewTracerProvider().Tracer("test"))

	ctx, span := tracer.StartSpan(context.Background(), "test_span")
	assert.NotNil(t, ctx)

	_, ok := span.(*OpenTelemetrySpan)
	assert.True(t, ok, "Should return an OpenTelemetrySpan")

	span.SetTag("tag", 42)
	span.RecordError(errors.New("boom"))
	span.Finish()
}

type recordingTracer struct {
	names []string
	span  *recordingSpan
}

func (t *recordingTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	t.names = append(t.names, name)
	t.span = &recordingSpan{tags: map[string]any{}}
	return ctx, t.span
}

type recordingSpan struct {
	tags     map[string]any
	errs     []error
	finished bool
}

func (s *recordingSpan) Finish()                      { s.finished = true }
func (s *recordingSpan) SetTag(key string, value any) { s.tags[key] = value }
func (s *recordingSpan) RecordError(err error)        { s.errs = append(s.errs, err) }

func TestMiddlewareTracesChecks(t *testing.T) {
	tracer := &recordingTracer{}
	m, err := New(WithEngine(testEngine(t)), WithTracer(tracer))
	require.NoError(t, err)

	handler := m.CheckSecret(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+validHeader)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, []string{"sssecrets.CheckSecret"}, tracer.names)
	assert.True(t, tracer.span.finished)
	assert.Equal(t, "header", tracer.span.tags["secret.kind"])
	assert.Equal(t, "valid", tracer.span.tags["secret.result"])
	assert.Empty(t, tracer.span.errs)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tamperedToken)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, tracer.span.finished)
	assert.Equal(t, "checksum_mismatch", tracer.span.tags["secret.result"])
	assert.Len(t, tracer.span.errs, 1)
}
