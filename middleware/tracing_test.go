package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/spetersoncode/flux"
)

func setupTestTracer() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, tp.Tracer("test")
}

type tracedAction struct {
	ctx context.Context
}

func (tracedAction) Type() string                { return "TRACED" }
func (a tracedAction) Context() context.Context { return a.ctx }

func TestTracing_CreatesSpan(t *testing.T) {
	sr, tracer := setupTestTracer()
	s, err := newStore(TracingWithTracer[int](tracer))
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "INCREMENT"})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "flux.dispatch", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("flux.action.type", "INCREMENT"))
}

func TestTracing_RecordsError(t *testing.T) {
	sr, tracer := setupTestTracer()
	boom := errors.New("boom")
	s, err := flux.New(func(n int, a flux.Action) (int, error) {
		if a.Type() == "FAIL" {
			return n, boom
		}
		return n, nil
	}, flux.WithEnhancer(flux.ApplyMiddleware(TracingWithTracer[int](tracer))))
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "FAIL"})
	require.ErrorIs(t, err, boom)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestTracing_UsesActionContext(t *testing.T) {
	sr, tracer := setupTestTracer()
	s, err := newStore(TracingWithTracer[int](tracer))
	require.NoError(t, err)

	parentCtx, parent := tracer.Start(context.Background(), "parent")
	_, err = s.Dispatch(tracedAction{ctx: parentCtx})
	require.NoError(t, err)
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	child := spans[0]
	assert.Equal(t, "flux.dispatch", child.Name())
	assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID())
}

func TestTracing_GlobalProvider(t *testing.T) {
	s, err := newStore(Tracing[int]())
	require.NoError(t, err)

	_, err = s.Dispatch(flux.Plain{Kind: "INCREMENT"})
	assert.NoError(t, err)
}
