package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("cooking-schedule/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan only opens handler spans below an existing request span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("schedule.action", strings.TrimPrefix(name, handlerSpanPrefix)),
	))
}

// recordSpanError marks the current span failed. Untagged errors are
// reported as Internal.
func recordSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	tag := usecase.ErrorTag(err)
	if tag == "" {
		tag = "Internal"
	}
	span.RecordError(err)
	span.SetAttributes(attribute.String("schedule.error_tag", tag))
	span.SetStatus(codes.Error, tag)
}
