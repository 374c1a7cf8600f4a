package pushqueue

import "time"

type PushMessage struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	DeliverAt      time.Time `json:"-"`

	TaskID   string    `json:"task_id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Severity string    `json:"severity"`
	Deadline time.Time `json:"deadline"`
}

type EnqueueResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type webhookEnvelope struct {
	Message     *PushMessage `json:"message"`
	DeliverAt   string       `json:"deliver_at,omitempty"`
	Attempt     int          `json:"attempt"`
	PublishedAt string       `json:"published_at"`
}

type webhookResponse struct {
	ID         string `json:"id"`
	AcceptedAt string `json:"accepted_at"`
}
