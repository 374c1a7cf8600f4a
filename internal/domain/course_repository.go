package domain

import "context"

//go:generate mockgen -source=course_repository.go -destination=course_repository_mock.go -package=domain

// CourseRepository persists courses. Every lookup is scoped to the owner;
// a course owned by someone else is reported as ErrCourseNotFound.
type CourseRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Course, error)
	Create(ctx context.Context, course *Course) error
	GetForOwner(ctx context.Context, id, ownerID string) (*Course, error)
	Update(ctx context.Context, id, ownerID string, update CourseUpdate) (*Course, error)
	Delete(ctx context.Context, id, ownerID string) error
}
