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

var taskDeadline = time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)

func TestTaskService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTaskInput
		wantErr error
	}{
		{
			name:    "missing title",
			input:   CreateTaskInput{Deadline: taskDeadline, StatusCode: domain.StatusNotStarted},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing deadline",
			input:   CreateTaskInput{Title: "Essay", StatusCode: domain.StatusNotStarted},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing status",
			input:   CreateTaskInput{Title: "Essay", Deadline: taskDeadline},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown status",
			input:   CreateTaskInput{Title: "Essay", Deadline: taskDeadline, StatusCode: "done"},
			wantErr: domain.ErrInvalidStatus,
		},
		{
			name: "unknown priority",
			input: CreateTaskInput{
				Title:        "Essay",
				Deadline:     taskDeadline,
				StatusCode:   domain.StatusNotStarted,
				PriorityCode: ptr(domain.PriorityCode("urgent")),
			},
			wantErr: domain.ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewTaskService(
				domain.NewMockCourseRepository(ctrl),
				domain.NewMockTaskRepository(ctrl),
				domain.NewMockAuditRepository(ctrl),
				nil,
			)

			_, err := svc.Create(context.Background(), testActor, "course-1", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskService_CreateInForeignCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courses := domain.NewMockCourseRepository(ctrl)
	courses.EXPECT().GetForOwner(gomock.Any(), "course-9", testActor.UserID).Return(nil, domain.ErrCourseNotFound)

	svc := NewTaskService(courses, domain.NewMockTaskRepository(ctrl), domain.NewMockAuditRepository(ctrl), nil)
	_, err := svc.Create(context.Background(), testActor, "course-9", CreateTaskInput{
		Title:      "Essay",
		Deadline:   taskDeadline,
		StatusCode: domain.StatusNotStarted,
	})
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestTaskService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courses := domain.NewMockCourseRepository(ctrl)
	tasks := domain.NewMockTaskRepository(ctrl)
	audits := domain.NewMockAuditRepository(ctrl)
	catalogMetrics := metrics.NewCatalogMetrics(prometheus.NewRegistry())

	courses.EXPECT().GetForOwner(gomock.Any(), "course-1", testActor.UserID).Return(&domain.Course{ID: "course-1"}, nil)
	tasks.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *domain.Task) error {
			if task.CreatorID == nil || *task.CreatorID != testActor.UserID {
				t.Errorf("creator not set: %+v", task.CreatorID)
			}
			if task.Priority == nil || task.Priority.Code != domain.PriorityHigh {
				t.Errorf("priority not set: %+v", task.Priority)
			}
			task.ID = "task-1"
			return nil
		})
	audits.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewTaskService(courses, tasks, audits, catalogMetrics)
	task, err := svc.Create(context.Background(), testActor, "course-1", CreateTaskInput{
		Title:        "Essay",
		Deadline:     taskDeadline,
		StatusCode:   domain.StatusNotStarted,
		PriorityCode: ptr(domain.PriorityHigh),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "task-1" {
		t.Errorf("id: got %q", task.ID)
	}
	if got := testutil.ToFloat64(catalogMetrics.TasksCreated); got != 1 {
		t.Errorf("tasks created counter: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(catalogMetrics.TasksCompleted); got != 0 {
		t.Errorf("tasks completed counter: got %v, want 0", got)
	}
}

func TestTaskService_UpdateCountsCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := domain.NewMockTaskRepository(ctrl)
	audits := domain.NewMockAuditRepository(ctrl)
	catalogMetrics := metrics.NewCatalogMetrics(prometheus.NewRegistry())

	open := &domain.Task{ID: "task-1", Status: domain.TaskStatus{Code: domain.StatusInProgress}}
	done := &domain.Task{ID: "task-1", Status: domain.TaskStatus{Code: domain.StatusCompleted}}

	update := domain.TaskUpdate{StatusCode: ptr(domain.StatusCompleted)}
	tasks.EXPECT().GetForOwner(gomock.Any(), "task-1", testActor.UserID).Return(open, nil)
	tasks.EXPECT().Update(gomock.Any(), "task-1", testActor.UserID, update).Return(done, nil)
	audits.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewTaskService(domain.NewMockCourseRepository(ctrl), tasks, audits, catalogMetrics)
	if _, err := svc.Update(context.Background(), testActor, "task-1", update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(catalogMetrics.TasksCompleted); got != 1 {
		t.Errorf("tasks completed counter: got %v, want 1", got)
	}
}

func TestTaskService_ListByCourseChecksOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courses := domain.NewMockCourseRepository(ctrl)
	courses.EXPECT().GetForOwner(gomock.Any(), "course-1", "user-2").Return(nil, domain.ErrCourseNotFound)

	svc := NewTaskService(courses, domain.NewMockTaskRepository(ctrl), nil, nil)
	if _, err := svc.ListByCourse(context.Background(), "user-2", "course-1"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestReminderService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := domain.NewMockTaskRepository(ctrl)
	reminders := domain.NewMockReminderRepository(ctrl)
	svc := NewReminderService(tasks, reminders, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "task-1", time.Time{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero remind_at: got %v, want ErrValidation", err)
	}

	tasks.EXPECT().GetForOwner(gomock.Any(), "task-9", "user-1").Return(nil, domain.ErrTaskNotFound)
	if _, err := svc.Create(ctx, "user-1", "task-9", taskDeadline); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("foreign task: got %v, want ErrTaskNotFound", err)
	}

	tasks.EXPECT().GetForOwner(gomock.Any(), "task-1", "user-1").Return(&domain.Task{ID: "task-1"}, nil)
	reminders.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *domain.Reminder) error {
			if r.TaskID != "task-1" || !r.RemindAt.Equal(taskDeadline) {
				t.Errorf("unexpected reminder: %+v", r)
			}
			r.ID = "reminder-1"
			return nil
		})
	created, err := svc.Create(ctx, "user-1", "task-1", taskDeadline)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "reminder-1" {
		t.Errorf("id: got %q", created.ID)
	}
}
