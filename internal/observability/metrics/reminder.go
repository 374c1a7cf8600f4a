package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	pollsTotal           metric.Int64Counter
	pollDuration         metric.Float64Histogram
	notificationsEmitted metric.Int64Counter
	notificationsDropped metric.Int64Counter
	sinkFailures         metric.Int64Counter
	schedulerTickSize    metric.Int64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	pollsTotal, err := meter.Int64Counter(
		"reminder_polls_total",
		metric.WithDescription("Total number of reminder polls"),
		metric.WithUnit("{poll}"),
	)
	if err != nil {
		return nil, err
	}

	pollDuration, err := meter.Float64Histogram(
		"reminder_poll_duration_seconds",
		metric.WithDescription("Time spent on a single reminder poll"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	notificationsEmitted, err := meter.Int64Counter(
		"reminder_notifications_emitted_total",
		metric.WithDescription("Total number of emitted deadline notifications"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsDropped, err := meter.Int64Counter(
		"reminder_notifications_dropped_total",
		metric.WithDescription("Active notifications removed by reconciliation, dismissal or clearing"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	sinkFailures, err := meter.Int64Counter(
		"reminder_sink_failures_total",
		metric.WithDescription("Total number of failed notification sink deliveries"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	schedulerTickSize, err := meter.Int64Histogram(
		"reminder_scheduler_sessions",
		metric.WithDescription("Number of sessions polled per scheduler tick"),
		metric.WithUnit("{session}"),
		metric.WithExplicitBucketBoundaries(
			0, 1, 5, 10, 25, 50, 100, 250, 500, 1000,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		pollsTotal:           pollsTotal,
		pollDuration:         pollDuration,
		notificationsEmitted: notificationsEmitted,
		notificationsDropped: notificationsDropped,
		sinkFailures:         sinkFailures,
		schedulerTickSize:    schedulerTickSize,
	}, nil
}

func (m *ReminderMetrics) RecordPoll(ctx context.Context, outcome string, duration time.Duration) {
	m.pollsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.pollDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordEmitted(ctx context.Context, severity string) {
	m.notificationsEmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("severity", severity),
	))
}

func (m *ReminderMetrics) RecordDropped(ctx context.Context, reason string, count int) {
	if count <= 0 {
		return
	}
	m.notificationsDropped.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *ReminderMetrics) RecordSinkFailure(ctx context.Context, sink string) {
	m.sinkFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sink", sink),
	))
}

func (m *ReminderMetrics) RecordSchedulerTick(ctx context.Context, sessions int) {
	m.schedulerTickSize.Record(ctx, int64(sessions))
}
