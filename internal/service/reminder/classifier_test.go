package reminder

import (
	"testing"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		delta        time.Duration
		wantSeverity domain.Severity
		wantMessage  string
		wantOK       bool
	}{
		// Overdue
		{
			name:         "one second past deadline is overdue by 1 day",
			delta:        -time.Second,
			wantSeverity: domain.SeverityOverdue,
			wantMessage:  "Overdue by 1 day",
			wantOK:       true,
		},
		{
			name:         "exactly one day past deadline",
			delta:        -24 * time.Hour,
			wantSeverity: domain.SeverityOverdue,
			wantMessage:  "Overdue by 1 day",
			wantOK:       true,
		},
		{
			name:         "a day and a half past deadline floors to 1 day",
			delta:        -36 * time.Hour,
			wantSeverity: domain.SeverityOverdue,
			wantMessage:  "Overdue by 1 day",
			wantOK:       true,
		},
		{
			name:         "three days past deadline",
			delta:        -72*time.Hour - time.Minute,
			wantSeverity: domain.SeverityOverdue,
			wantMessage:  "Overdue by 3 days",
			wantOK:       true,
		},
		// Urgent
		{
			name:         "deadline exactly now is urgent",
			delta:        0,
			wantSeverity: domain.SeverityUrgent,
			wantMessage:  "Due in 0 minutes",
			wantOK:       true,
		},
		{
			name:         "90 seconds left floors to 1 minute",
			delta:        90 * time.Second,
			wantSeverity: domain.SeverityUrgent,
			wantMessage:  "Due in 1 minute",
			wantOK:       true,
		},
		{
			name:         "59 minutes left",
			delta:        59 * time.Minute,
			wantSeverity: domain.SeverityUrgent,
			wantMessage:  "Due in 59 minutes",
			wantOK:       true,
		},
		{
			name:         "just under one hour",
			delta:        time.Hour - time.Nanosecond,
			wantSeverity: domain.SeverityUrgent,
			wantMessage:  "Due in 59 minutes",
			wantOK:       true,
		},
		// Hourly warning
		{
			name:         "exactly one hour belongs to warning",
			delta:        time.Hour,
			wantSeverity: domain.SeverityWarning,
			wantMessage:  "Due in 1 hour",
			wantOK:       true,
		},
		{
			name:         "five and a half hours floors to 5",
			delta:        5*time.Hour + 30*time.Minute,
			wantSeverity: domain.SeverityWarning,
			wantMessage:  "Due in 5 hours",
			wantOK:       true,
		},
		{
			name:         "just under 24 hours",
			delta:        24*time.Hour - time.Second,
			wantSeverity: domain.SeverityWarning,
			wantMessage:  "Due in 23 hours",
			wantOK:       true,
		},
		// Dead zone between one and two days
		{
			name:   "exactly 24 hours is silent",
			delta:  24 * time.Hour,
			wantOK: false,
		},
		{
			name:   "36 hours is silent",
			delta:  36 * time.Hour,
			wantOK: false,
		},
		{
			name:   "exactly 48 hours is silent",
			delta:  48 * time.Hour,
			wantOK: false,
		},
		// Three day warning
		{
			name:         "just over 48 hours",
			delta:        48*time.Hour + time.Second,
			wantSeverity: domain.SeverityWarning,
			wantMessage:  "Due in 3 days",
			wantOK:       true,
		},
		{
			name:         "49 hours",
			delta:        49 * time.Hour,
			wantSeverity: domain.SeverityWarning,
			wantMessage:  "Due in 3 days",
			wantOK:       true,
		},
		{
			name:         "exactly 72 hours",
			delta:        72 * time.Hour,
			wantSeverity: domain.SeverityWarning,
			wantMessage:  "Due in 3 days",
			wantOK:       true,
		},
		// Far future
		{
			name:   "just over 72 hours is silent",
			delta:  72*time.Hour + time.Second,
			wantOK: false,
		},
		{
			name:   "two weeks is silent",
			delta:  14 * 24 * time.Hour,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, message, ok := Classify(tt.delta)

			if ok != tt.wantOK {
				t.Fatalf("Classify(%v) ok = %v, want %v", tt.delta, ok, tt.wantOK)
			}
			if severity != tt.wantSeverity {
				t.Errorf("Classify(%v) severity = %q, want %q", tt.delta, severity, tt.wantSeverity)
			}
			if message != tt.wantMessage {
				t.Errorf("Classify(%v) message = %q, want %q", tt.delta, message, tt.wantMessage)
			}
		})
	}
}
