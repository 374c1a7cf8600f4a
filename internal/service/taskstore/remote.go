package taskstore

import (
	"context"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/reminder"
)

// Remote reads tasks of the server-backed store.
type Remote struct {
	tasks domain.TaskRepository
}

func NewRemote(tasks domain.TaskRepository) *Remote {
	return &Remote{tasks: tasks}
}

func (r *Remote) ListTasks(ctx context.Context, userID string) ([]reminder.Task, error) {
	tasks, err := r.tasks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized := make([]reminder.Task, 0, len(tasks))
	for i := range tasks {
		normalized = append(normalized, reminder.Task{
			ID:        tasks[i].ID,
			Title:     tasks[i].Title,
			Deadline:  tasks[i].Deadline,
			Completed: tasks[i].IsCompleted(),
		})
	}
	return normalized, nil
}
