package catalog

import (
	"context"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
)

// ReminderService manages reminder times a user schedules explicitly for a
// task. They are independent of the deadline notifications.
type ReminderService struct {
	tasks          domain.TaskRepository
	reminders      domain.ReminderRepository
	catalogMetrics *metrics.CatalogMetrics
}

func NewReminderService(
	tasks domain.TaskRepository,
	reminders domain.ReminderRepository,
	catalogMetrics *metrics.CatalogMetrics,
) *ReminderService {
	return &ReminderService{
		tasks:          tasks,
		reminders:      reminders,
		catalogMetrics: catalogMetrics,
	}
}

func (s *ReminderService) List(ctx context.Context, ownerID, taskID string) ([]domain.Reminder, error) {
	if _, err := s.tasks.GetForOwner(ctx, taskID, ownerID); err != nil {
		return nil, err
	}
	return s.reminders.ListByTask(ctx, taskID)
}

func (s *ReminderService) Create(ctx context.Context, ownerID, taskID string, remindAt time.Time) (*domain.Reminder, error) {
	if remindAt.IsZero() {
		return nil, validationError("remind_at is required")
	}
	if _, err := s.tasks.GetForOwner(ctx, taskID, ownerID); err != nil {
		return nil, err
	}

	reminder := &domain.Reminder{TaskID: taskID, RemindAt: remindAt}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}

	s.catalogMetrics.IncRemindersCreated()
	return reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, ownerID, id string, update domain.ReminderUpdate) (*domain.Reminder, error) {
	if update.RemindAt != nil && update.RemindAt.IsZero() {
		return nil, validationError("remind_at must not be empty")
	}
	return s.reminders.Update(ctx, id, ownerID, update)
}

func (s *ReminderService) Delete(ctx context.Context, ownerID, id string) error {
	return s.reminders.Delete(ctx, id, ownerID)
}
