package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/infra/pushqueue"
)

// PushSink forwards each notification to the platform push queue.
type PushSink struct {
	queue pushqueue.PushQueue
}

func NewPushSink(queue pushqueue.PushQueue) *PushSink {
	return &PushSink{queue: queue}
}

func (s *PushSink) Name() string {
	return "push_queue"
}

func (s *PushSink) Publish(ctx context.Context, userID string, notifications []domain.Notification) error {
	var errs []error
	for _, n := range notifications {
		msg := &pushqueue.PushMessage{
			NotificationID: n.ID,
			UserID:         userID,
			TaskID:         n.TaskID,
			Title:          n.TaskTitle,
			Body:           n.Message,
			Severity:       n.Severity.String(),
			Deadline:       n.Deadline,
		}
		if _, err := s.queue.Enqueue(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("notification %s: %w", n.ID, err))
		}
	}
	return errors.Join(errs...)
}

// RecorderSink stores emissions for analysis.
type RecorderSink struct {
	recorder domain.NotificationRecorder
}

func NewRecorderSink(recorder domain.NotificationRecorder) *RecorderSink {
	return &RecorderSink{recorder: recorder}
}

func (s *RecorderSink) Name() string {
	return "recorder"
}

func (s *RecorderSink) Publish(ctx context.Context, userID string, notifications []domain.Notification) error {
	records := make([]domain.NotificationRecord, 0, len(notifications))
	for _, n := range notifications {
		records = append(records, domain.NotificationRecord{
			UserID:         userID,
			TaskID:         n.TaskID,
			NotificationID: n.ID,
			Severity:       n.Severity,
			Deadline:       n.Deadline,
			EmittedAt:      n.CreatedAt,
		})
	}
	return s.recorder.RecordNotifications(ctx, records)
}
