package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification_recorder.go -destination=notification_recorder_mock.go -package=domain

type NotificationRecord struct {
	UserID         string
	TaskID         string
	NotificationID string
	Severity       Severity
	Deadline       time.Time
	EmittedAt      time.Time
}

// NotificationRecorder stores emitted notifications for later analysis.
type NotificationRecorder interface {
	RecordNotifications(ctx context.Context, records []NotificationRecord) error
	Flush(ctx context.Context) error
	Close() error
}
