package fsmgine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fsmgine"

// startProcessSpan creates the span covering one Process call. Uses the
// global tracer provider; with none installed the span is a no-op. The caller
// is responsible for ending the span via endProcessSpan.
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startProcessSpan(ctx context.Context, machineName, machineID string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)

	ctx, span := tracer.Start(ctx, "fsm.process")
	span.SetAttributes(
		attribute.String("machine", machineName),
		attribute.String("machine_id", machineID),
	)

	return ctx, span
}

// annotateTransition records the selected transition's endpoints on the span.
func annotateTransition(span trace.Span, from, to string) {
	span.SetAttributes(
		attribute.String("from_state", from),
		attribute.String("to_state", to),
	)
}

// endProcessSpan records the outcome and closes the span.
func endProcessSpan(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, outcome)
	}

	span.End()
}
