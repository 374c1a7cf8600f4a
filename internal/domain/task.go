package domain

import "time"

type Task struct {
	ID          string        `json:"id"`
	CourseID    string        `json:"course_id"`
	CreatorID   *string       `json:"creator_id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Deadline    time.Time     `json:"deadline"`
	Priority    *TaskPriority `json:"priority"`
	Status      TaskStatus    `json:"status"`
	Reminders   []Reminder    `json:"reminders,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t.Status.Code.IsCompleted()
}

// TaskUpdate carries a partial task update. ClearPriority removes the
// priority and takes precedence over PriorityCode.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Deadline      *time.Time
	StatusCode    *StatusCode
	PriorityCode  *PriorityCode
	ClearPriority bool
}

// DashboardStats summarizes a user's courses and tasks.
type DashboardStats struct {
	TotalCourses         int `json:"total_courses"`
	TotalTasks           int `json:"total_tasks"`
	CompletedTasks       int `json:"completed_tasks"`
	UpcomingDeadlines    int `json:"upcoming_deadlines"`
	CompletionPercentage int `json:"completion_percentage"`
}
