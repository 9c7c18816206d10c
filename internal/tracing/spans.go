package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for navigation tracing.
const (
	AttrSessionID  = "nav.session.id"
	AttrAction     = "nav.action"
	AttrDomain     = "nav.domain"
	AttrSection    = "nav.section"
	AttrFromPath   = "nav.path.from"
	AttrToPath     = "nav.path.to"
	AttrHistoryLen = "nav.history.length"
	AttrResult     = "nav.result"
	AttrErrorType  = "error.type"
)

// SpanPrefixTransition prefixes every transition span name.
const SpanPrefixTransition = "nav.transition."

// Events recorded on transition spans.
const (
	EventCollaboratorNotified = "collaborator.notified"
	EventAddressReplaced      = "address.replaced"
	EventAddressFailed        = "address.failed"
	EventHistoryEvicted       = "history.evicted"
)

// Result values for AttrResult.
const (
	ResultCommitted = "committed"
	ResultRejected  = "rejected"
	ResultNoop      = "noop"
)

// StartTransition starts the span for one dispatched action. A nil tracer
// yields a non-recording span.
func StartTransition(ctx context.Context, tracer trace.Tracer, action, sessionID, fromPath string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	ctx, span := tracer.Start(ctx, SpanPrefixTransition+action,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetAttributes(
		attribute.String(AttrAction, action),
		attribute.String(AttrSessionID, sessionID),
		attribute.String(AttrFromPath, fromPath),
	)
	return ctx, span
}

// EndTransition records the outcome on span and ends it.
func EndTransition(span trace.Span, result, toPath string, historyLen int, err error) {
	span.SetAttributes(
		attribute.String(AttrResult, result),
		attribute.String(AttrToPath, toPath),
		attribute.Int(AttrHistoryLen, historyLen),
	)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorType, errorType(err)))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// errorType returns the innermost wrapped error, which is the sentinel for
// navigation rejections.
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
