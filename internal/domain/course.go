package domain

import "time"

type Course struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	TasksCount  int       `json:"tasks_count"`
	Tasks       []Task    `json:"tasks,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseUpdate carries a partial course update. Nil fields are left untouched.
type CourseUpdate struct {
	Title       *string
	Description *string
	Color       *string
}
