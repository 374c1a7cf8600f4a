package catalog

import (
	"context"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
)

type CourseService struct {
	courses        domain.CourseRepository
	audit          auditor
	catalogMetrics *metrics.CatalogMetrics
}

func NewCourseService(
	courses domain.CourseRepository,
	audit domain.AuditRepository,
	catalogMetrics *metrics.CatalogMetrics,
) *CourseService {
	return &CourseService{
		courses:        courses,
		audit:          auditor{repo: audit, clock: time.Now},
		catalogMetrics: catalogMetrics,
	}
}

// List returns the owner's courses, newest first, with their task counts.
func (s *CourseService) List(ctx context.Context, ownerID string) ([]domain.Course, error) {
	return s.courses.ListByOwner(ctx, ownerID)
}

func (s *CourseService) Create(ctx context.Context, actor Actor, input CreateCourseInput) (*domain.Course, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateColor(input.Color); err != nil {
		return nil, err
	}

	course := &domain.Course{
		OwnerID:     actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionCreate, domain.AuditObjectCourse, course.ID)
	s.catalogMetrics.IncCoursesCreated()

	return course, nil
}

// Get returns the course with its tasks ordered by deadline.
func (s *CourseService) Get(ctx context.Context, ownerID, id string) (*domain.Course, error) {
	return s.courses.GetForOwner(ctx, id, ownerID)
}

func (s *CourseService) Update(ctx context.Context, actor Actor, id string, update domain.CourseUpdate) (*domain.Course, error) {
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if err := validateColor(update.Color); err != nil {
		return nil, err
	}

	course, err := s.courses.Update(ctx, id, actor.UserID, update)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, domain.AuditActionUpdate, domain.AuditObjectCourse, id)
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.courses.Delete(ctx, id, actor.UserID); err != nil {
		return err
	}

	s.audit.record(ctx, actor, domain.AuditActionDelete, domain.AuditObjectCourse, id)
	return nil
}
