package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/situgas/internal/service/notify"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartPollSpan(ctx context.Context, userID string, now time.Time) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.poll",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.String("poll.now", now.Format(time.RFC3339)),
		),
	)
}

func StartSchedulerTickSpan(ctx context.Context, tick time.Time) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.scheduler_tick",
		trace.WithAttributes(
			attribute.String("tick.time", tick.Format(time.RFC3339)),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPollResult(span trace.Span, evaluatedCount, emittedCount, droppedCount int, err error) {
	span.SetAttributes(
		attribute.Int("poll.evaluated_count", evaluatedCount),
		attribute.Int("poll.emitted_count", emittedCount),
		attribute.Int("poll.dropped_count", droppedCount),
	)
	RecordError(span, err)
}

func RecordSchedulerTickResult(span trace.Span, sessionCount, failedCount int) {
	span.SetAttributes(
		attribute.Int("tick.session_count", sessionCount),
		attribute.Int("tick.failed_count", failedCount),
	)
	if failedCount > 0 {
		span.SetStatus(codes.Error, "one or more polls failed")
		return
	}
	span.SetStatus(codes.Ok, "")
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
