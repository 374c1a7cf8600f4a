package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
)

type TaskService struct {
	courses        domain.CourseRepository
	tasks          domain.TaskRepository
	audit          auditor
	catalogMetrics *metrics.CatalogMetrics
}

func NewTaskService(
	courses domain.CourseRepository,
	tasks domain.TaskRepository,
	audit domain.AuditRepository,
	catalogMetrics *metrics.CatalogMetrics,
) *TaskService {
	return &TaskService{
		courses:        courses,
		tasks:          tasks,
		audit:          auditor{repo: audit, clock: time.Now},
		catalogMetrics: catalogMetrics,
	}
}

func validateCodes(status *domain.StatusCode, priority *domain.PriorityCode) error {
	if status != nil && !status.IsValid() {
		return domain.ErrInvalidStatus
	}
	if priority != nil && !priority.IsValid() {
		return domain.ErrInvalidPriority
	}
	return nil
}

// ListByCourse returns the tasks of an owned course by ascending deadline.
func (s *TaskService) ListByCourse(ctx context.Context, ownerID, courseID string) ([]domain.Task, error) {
	if _, err := s.courses.GetForOwner(ctx, courseID, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.ListByCourse(ctx, courseID)
}

func (s *TaskService) Create(ctx context.Context, actor Actor, courseID string, input CreateTaskInput) (*domain.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if input.Deadline.IsZero() {
		return nil, validationError("deadline is required")
	}
	if input.StatusCode == "" {
		return nil, validationError("status_code is required")
	}
	if err := validateCodes(&input.StatusCode, input.PriorityCode); err != nil {
		return nil, err
	}

	if _, err := s.courses.GetForOwner(ctx, courseID, actor.UserID); err != nil {
		return nil, err
	}

	creatorID := actor.UserID
	task := &domain.Task{
		CourseID:    courseID,
		CreatorID:   &creatorID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Status:      domain.TaskStatus{Code: input.StatusCode},
	}
	if input.PriorityCode != nil {
		task.Priority = &domain.TaskPriority{Code: *input.PriorityCode}
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionCreate, domain.AuditObjectTask, task.ID)
	s.catalogMetrics.IncTasksCreated()
	if task.IsCompleted() {
		s.catalogMetrics.IncTasksCompleted()
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return s.tasks.GetForOwner(ctx, id, ownerID)
}

func (s *TaskService) Update(ctx context.Context, actor Actor, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if update.Deadline != nil && update.Deadline.IsZero() {
		return nil, validationError("deadline must not be empty")
	}
	if err := validateCodes(update.StatusCode, update.PriorityCode); err != nil {
		return nil, err
	}

	before, err := s.tasks.GetForOwner(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, actor.UserID, update)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionUpdate, domain.AuditObjectTask, id)
	if !before.IsCompleted() && task.IsCompleted() {
		s.catalogMetrics.IncTasksCompleted()
		slog.DebugContext(ctx, "task completed",
			slog.String("task_id", id),
			slog.String("user_id", actor.UserID),
		)
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.tasks.Delete(ctx, id, actor.UserID); err != nil {
		return err
	}

	s.audit.record(ctx, actor, domain.AuditActionDelete, domain.AuditObjectTask, id)
	return nil
}
