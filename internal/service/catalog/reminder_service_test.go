package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
)

var testRemindAt = time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

func TestReminderService_Create(t *testing.T) {
	tests := []struct {
		name      string
		remindAt  time.Time
		taskErr   error
		wantErr   error
		wantCount float64
	}{
		{name: "created", remindAt: testRemindAt, wantCount: 1},
		{name: "missing time", remindAt: time.Time{}, wantErr: domain.ErrValidation},
		{name: "foreign task", remindAt: testRemindAt, taskErr: domain.ErrTaskNotFound, wantErr: domain.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tasks := domain.NewMockTaskRepository(ctrl)
			reminders := domain.NewMockReminderRepository(ctrl)
			catalogMetrics := metrics.NewCatalogMetrics(prometheus.NewRegistry())

			if !tt.remindAt.IsZero() {
				if tt.taskErr != nil {
					tasks.EXPECT().GetForOwner(gomock.Any(), "task-1", "user-1").Return(nil, tt.taskErr)
				} else {
					tasks.EXPECT().GetForOwner(gomock.Any(), "task-1", "user-1").Return(&domain.Task{ID: "task-1"}, nil)
					reminders.EXPECT().
						Create(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, r *domain.Reminder) error {
							if r.TaskID != "task-1" || !r.RemindAt.Equal(testRemindAt) || r.Sent {
								t.Errorf("unexpected reminder %+v", r)
							}
							r.ID = "reminder-1"
							return nil
						})
				}
			}

			svc := NewReminderService(tasks, reminders, catalogMetrics)
			got, err := svc.Create(context.Background(), "user-1", "task-1", tt.remindAt)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
			} else if err != nil || got.ID != "reminder-1" {
				t.Fatalf("unexpected result %+v, %v", got, err)
			}

			if count := testutil.ToFloat64(catalogMetrics.RemindersCreated); count != tt.wantCount {
				t.Errorf("reminders created counter: got %v, want %v", count, tt.wantCount)
			}
		})
	}
}

func TestReminderService_ListChecksOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := domain.NewMockTaskRepository(ctrl)
	reminders := domain.NewMockReminderRepository(ctrl)

	tasks.EXPECT().GetForOwner(gomock.Any(), "task-1", "intruder").Return(nil, domain.ErrTaskNotFound)

	svc := NewReminderService(tasks, reminders, nil)
	if _, err := svc.List(context.Background(), "intruder", "task-1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}

func TestReminderService_UpdateRejectsEmptyTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewReminderService(domain.NewMockTaskRepository(ctrl), domain.NewMockReminderRepository(ctrl), nil)

	zero := time.Time{}
	_, err := svc.Update(context.Background(), "user-1", "reminder-1", domain.ReminderUpdate{RemindAt: &zero})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}
