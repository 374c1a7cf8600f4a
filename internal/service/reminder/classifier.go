package reminder

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

const (
	// UrgentWindow is the remaining time below which a task is urgent.
	UrgentWindow = time.Hour
	// WarningWindow is the remaining time below which a task gets an hourly warning.
	WarningWindow = 24 * time.Hour
	// ThreeDayWindowStart and ThreeDayWindowEnd bound the "Due in 3 days"
	// warning: strictly more than two days, at most three days remaining.
	ThreeDayWindowStart = 48 * time.Hour
	ThreeDayWindowEnd   = 72 * time.Hour

	day = 24 * time.Hour
)

// Classify maps the time remaining until a deadline onto a severity and its
// message. Rules are checked in escalation order and the first match wins;
// ok is false when the task needs no notification.
//
// Intervals are half-open with boundaries belonging to the less severe
// bucket, except that delta == 0 is urgent rather than overdue.
func Classify(delta time.Duration) (severity domain.Severity, message string, ok bool) {
	switch {
	case delta < 0:
		return domain.SeverityOverdue, overdueMessage(-delta), true
	case delta < UrgentWindow:
		return domain.SeverityUrgent, dueInMessage(int64(delta/time.Minute), "minute"), true
	case delta < WarningWindow:
		return domain.SeverityWarning, dueInMessage(int64(delta/time.Hour), "hour"), true
	case delta > ThreeDayWindowStart && delta <= ThreeDayWindowEnd:
		return domain.SeverityWarning, "Due in 3 days", true
	default:
		return "", "", false
	}
}

// overdueMessage reports elapsed whole days, floored, never less than one.
func overdueMessage(elapsed time.Duration) string {
	days := int64(elapsed / day)
	if days < 1 {
		days = 1
	}
	return fmt.Sprintf("Overdue by %d %s", days, pluralize(days, "day"))
}

func dueInMessage(n int64, unit string) string {
	return fmt.Sprintf("Due in %d %s", n, pluralize(n, unit))
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
