package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "skillbridge"

// StartGenerationSpan starts a span covering one plan generation.
func StartGenerationSpan(ctx context.Context, background, timeCommitment string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "plan.generate",
		trace.WithAttributes(
			attribute.String("plan.background", background),
			attribute.String("plan.time_commitment", timeCommitment),
		),
	)
}

// StartAttemptSpan starts a span for one model attempt in the fallback chain.
func StartAttemptSpan(ctx context.Context, model string, attempt int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "model.attempt",
		trace.WithAttributes(
			attribute.String("model.name", model),
			attribute.Int("model.attempt", attempt),
		),
	)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
