package domain

import "context"

//go:generate mockgen -source=reminder_repository.go -destination=reminder_repository_mock.go -package=domain

type ReminderRepository interface {
	ListByTask(ctx context.Context, taskID string) ([]Reminder, error)
	Create(ctx context.Context, reminder *Reminder) error
	GetForOwner(ctx context.Context, id, ownerID string) (*Reminder, error)
	Update(ctx context.Context, id, ownerID string, update ReminderUpdate) (*Reminder, error)
	Delete(ctx context.Context, id, ownerID string) error
}
