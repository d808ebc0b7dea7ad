package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/spetersoncode/flux"
)

// tracerName is the instrumentation scope name for flux tracing.
const tracerName = "github.com/spetersoncode/flux"

// Contextual is implemented by actions that carry a context. Tracing uses it
// as the parent of the dispatch span.
type Contextual interface {
	Context() context.Context
}

// Tracing returns middleware that wraps every dispatch in an OpenTelemetry
// span using the global TracerProvider. Without a configured provider the
// noop tracer is used.
func Tracing[S any]() flux.Middleware[S] {
	return TracingWithTracer[S](otel.Tracer(tracerName))
}

// TracingWithTracer returns tracing middleware using the provided tracer.
func TracingWithTracer[S any](tracer trace.Tracer) flux.Middleware[S] {
	return func(api flux.MiddlewareAPI[S]) flux.Link {
		return func(next flux.Dispatch) flux.Dispatch {
			return func(a flux.Action) (any, error) {
				ctx := context.Background()
				if c, ok := a.(Contextual); ok && c.Context() != nil {
					ctx = c.Context()
				}

				_, span := tracer.Start(ctx, "flux.dispatch",
					trace.WithAttributes(attribute.String("flux.action.type", a.Type())),
					trace.WithSpanKind(trace.SpanKindInternal),
				)
				defer span.End()

				result, err := next(a)
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
				} else {
					span.SetStatus(codes.Ok, "")
				}

				return result, err
			}
		}
	}
}
