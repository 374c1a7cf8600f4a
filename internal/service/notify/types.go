package notify

import (
	"context"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/reminder"
)

//go:generate mockgen -source=types.go -destination=mock.go -package=notify

// TaskSource loads every task of a user, already normalized for evaluation.
type TaskSource interface {
	ListTasks(ctx context.Context, userID string) ([]reminder.Task, error)
}

// Sink receives notifications right after they were emitted.
type Sink interface {
	Name() string
	Publish(ctx context.Context, userID string, notifications []domain.Notification) error
}

type PollResult struct {
	Evaluated int                   `json:"evaluated"`
	Emitted   []domain.Notification `json:"emitted"`
	Dropped   int                   `json:"dropped"`
}

const (
	dropReasonReconciled = "reconciled"
	dropReasonDismissed  = "dismissed"
	dropReasonCleared    = "cleared"
)
