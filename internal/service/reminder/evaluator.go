package reminder

import (
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

// Task is the normalized view of a task the evaluator works on, independent
// of where the task was loaded from.
type Task struct {
	ID        string
	Title     string
	Deadline  time.Time
	Completed bool
}

// Evaluator decides which tasks warrant a notification at a point in time.
// It holds no state; suppression bookkeeping belongs to the caller.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the notifications due for tasks at now, in task order.
// Completed tasks and notifications whose id is in suppressed are skipped.
// The suppressed set is only read.
func (e *Evaluator) Evaluate(tasks []Task, now time.Time, suppressed map[string]struct{}) []domain.Notification {
	notifications := make([]domain.Notification, 0)
	emitted := make(map[string]struct{})

	for _, task := range tasks {
		if task.Completed {
			continue
		}

		severity, message, ok := Classify(task.Deadline.Sub(now))
		if !ok {
			continue
		}

		id := domain.NotificationID(task.ID, severity)
		if _, seen := suppressed[id]; seen {
			continue
		}
		// Task ids are unique per store; a repeated id still yields one notification.
		if _, dup := emitted[id]; dup {
			continue
		}
		emitted[id] = struct{}{}

		notifications = append(notifications, domain.Notification{
			ID:        id,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Deadline:  task.Deadline,
			Severity:  severity,
			Message:   message,
			CreatedAt: now,
		})
	}

	return notifications
}
