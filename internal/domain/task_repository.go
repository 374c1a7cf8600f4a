package domain

import "context"

//go:generate mockgen -source=task_repository.go -destination=task_repository_mock.go -package=domain

// TaskRepository persists tasks. Status and priority are addressed by code;
// the repository resolves them against the lookup tables.
type TaskRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	Create(ctx context.Context, task *Task) error
	GetForOwner(ctx context.Context, id, ownerID string) (*Task, error)
	Update(ctx context.Context, id, ownerID string, update TaskUpdate) (*Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type LookupRepository interface {
	ListStatuses(ctx context.Context) ([]TaskStatus, error)
	ListPriorities(ctx context.Context) ([]TaskPriority, error)
}
