package domain

import (
	"cmp"
	"slices"
	"time"
)

// Notification is an emitted deadline alert. It is never mutated after creation.
type Notification struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	Deadline  time.Time `json:"deadline"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationID derives the identifier of the notification for a task at a
// given severity. At most one live notification exists per pair.
func NotificationID(taskID string, severity Severity) string {
	return taskID + ":" + severity.String()
}

// SortNotifications orders notifications by creation time, then id.
func SortNotifications(notifications []Notification) {
	slices.SortFunc(notifications, func(a, b Notification) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
