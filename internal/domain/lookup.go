package domain

// StatusCode is the workflow state of a task as stored in task_statuses.
type StatusCode string

const (
	StatusNotStarted StatusCode = "belum"
	StatusInProgress StatusCode = "proses"
	StatusCompleted  StatusCode = "selesai"
)

func (s StatusCode) String() string {
	return string(s)
}

func (s StatusCode) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the code marks a finished task. Every other
// code, including unknown ones, counts as open.
func (s StatusCode) IsCompleted() bool {
	return s == StatusCompleted
}

// PriorityCode is the urgency label a student assigns to a task.
type PriorityCode string

const (
	PriorityLow    PriorityCode = "low"
	PriorityMedium PriorityCode = "medium"
	PriorityHigh   PriorityCode = "high"
)

func (p PriorityCode) String() string {
	return string(p)
}

func (p PriorityCode) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type TaskStatus struct {
	ID    uint       `json:"id"`
	Code  StatusCode `json:"code"`
	Label string     `json:"label"`
}

type TaskPriority struct {
	ID    uint         `json:"id"`
	Code  PriorityCode `json:"code"`
	Label string       `json:"label"`
}

// DefaultTaskStatuses is the seed set of task statuses.
func DefaultTaskStatuses() []TaskStatus {
	return []TaskStatus{
		{Code: StatusNotStarted, Label: "Belum"},
		{Code: StatusInProgress, Label: "Sedang Diproses"},
		{Code: StatusCompleted, Label: "Selesai"},
	}
}

// DefaultTaskPriorities is the seed set of task priorities.
func DefaultTaskPriorities() []TaskPriority {
	return []TaskPriority{
		{Code: PriorityLow, Label: "Rendah"},
		{Code: PriorityMedium, Label: "Sedang"},
		{Code: PriorityHigh, Label: "Tinggi"},
	}
}
