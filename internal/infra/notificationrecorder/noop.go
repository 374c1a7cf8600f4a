package notificationrecorder

import (
	"context"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.NotificationRecorder {
	return noopRecorder{}
}

func (noopRecorder) RecordNotifications(_ context.Context, _ []domain.NotificationRecord) error {
	return nil
}

func (noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (noopRecorder) Close() error {
	return nil
}
