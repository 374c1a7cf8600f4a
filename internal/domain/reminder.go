package domain

import "time"

// Reminder is an explicit reminder time a user scheduled for a task.
type Reminder struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	RemindAt  time.Time `json:"remind_at"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}

type ReminderUpdate struct {
	RemindAt *time.Time
	Sent     *bool
}
