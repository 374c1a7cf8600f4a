package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/situgas/internal/domain"
)

const tasksCountColumn = "(SELECT COUNT(*) FROM tasks WHERE tasks.course_id = courses.id) AS tasks_count"

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Course, error) {
	if !isUUID(ownerID) {
		return []domain.Course{}, nil
	}

	var models []courseModel
	err := r.db.WithContext(ctx).
		Model(&courseModel{}).
		Select("courses.*, "+tasksCountColumn).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, dbError(err)
	}

	courses := make([]domain.Course, 0, len(models))
	for i := range models {
		courses = append(courses, *models[i].toDomain())
	}
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	model := courseModel{
		ID:          newID(course.ID),
		OwnerID:     course.OwnerID,
		Title:       course.Title,
		Description: course.Description,
		Color:       course.Color,
	}
	if err := r.db.WithContext(ctx).Omit("Tasks").Create(&model).Error; err != nil {
		return dbError(err)
	}

	course.ID = model.ID
	course.CreatedAt = model.CreatedAt
	course.UpdatedAt = model.UpdatedAt
	return nil
}

// GetForOwner returns the course with its tasks ordered by deadline.
func (r *courseRepository) GetForOwner(ctx context.Context, id, ownerID string) (*domain.Course, error) {
	if !isUUID(id) || !isUUID(ownerID) {
		return nil, domain.ErrCourseNotFound
	}

	var model courseModel
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.deadline ASC")
		}).
		Preload("Tasks.Status").
		Preload("Tasks.Priority").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error
	if err != nil {
		return nil, mapError(err, domain.ErrCourseNotFound)
	}

	if model.Tasks == nil {
		model.Tasks = []taskModel{}
	}
	return model.toDomain(), nil
}

func (r *courseRepository) Update(ctx context.Context, id, ownerID string, update domain.CourseUpdate) (*domain.Course, error) {
	if !isUUID(id) || !isUUID(ownerID) {
		return nil, domain.ErrCourseNotFound
	}

	var model courseModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&model).Error; err != nil {
			return mapError(err, domain.ErrCourseNotFound)
		}

		changes := map[string]any{}
		if update.Title != nil {
			changes["title"] = *update.Title
		}
		if update.Description != nil {
			changes["description"] = *update.Description
		}
		if update.Color != nil {
			changes["color"] = *update.Color
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&model).Updates(changes).Error; err != nil {
			return dbError(err)
		}
		return dbError(tx.Where("id = ?", id).First(&model).Error)
	})
	if err != nil {
		return nil, err
	}

	return model.toDomain(), nil
}

// Delete removes the course; its tasks and their reminders cascade.
func (r *courseRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !isUUID(id) || !isUUID(ownerID) {
		return domain.ErrCourseNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&courseModel{})
	if result.Error != nil {
		return dbError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
