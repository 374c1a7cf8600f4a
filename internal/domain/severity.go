package domain

// Severity is the escalation tier of a deadline notification.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityUrgent  Severity = "urgent"
	SeverityOverdue Severity = "overdue"
)

func (s Severity) String() string {
	return string(s)
}

// Rank orders severities by escalation. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityUrgent:
		return 2
	case SeverityOverdue:
		return 3
	default:
		return 0
	}
}

func (s Severity) IsValid() bool {
	return s.Rank() > 0
}
