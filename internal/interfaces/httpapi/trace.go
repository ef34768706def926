package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("ncaam-summarizer/internal/interfaces/httpapi")

// startSpan opens a child span under the request's server span. Handler
// entry points get real spans; plumbing helpers and requests without a
// valid parent (filtered routes like /healthz) get a noop span back so
// no standalone roots appear.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if parent.SpanContext().IsValid() && shouldCreateHTTPAPISpan(name) {
		return apiTracer.Start(ctx, name)
	}
	return ctx, trace.SpanFromContext(context.Background())
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
