package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) withLookups(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Status").Preload("Priority")
}

func ownedCourseIDs(db *gorm.DB, ownerID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&courseModel{}).
		Select("id").
		Where("owner_id = ?", ownerID)
}

func toDomainTasks(models []taskModel) []domain.Task {
	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *models[i].toDomain())
	}
	return tasks
}

// ListByCourse returns the course's tasks by ascending deadline. Ownership
// of the course is checked by the caller.
func (r *taskRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Task, error) {
	if !isUUID(courseID) {
		return []domain.Task{}, nil
	}

	var models []taskModel
	err := r.withLookups(ctx).
		Where("course_id = ?", courseID).
		Order("deadline ASC").
		Find(&models).Error
	if err != nil {
		return nil, dbError(err)
	}
	return toDomainTasks(models), nil
}

// ListByOwner returns every task across the owner's courses.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if !isUUID(ownerID) {
		return []domain.Task{}, nil
	}

	var models []taskModel
	err := r.withLookups(ctx).
		Where("course_id IN (?)", ownedCourseIDs(r.db, ownerID)).
		Order("deadline ASC").
		Find(&models).Error
	if err != nil {
		return nil, dbError(err)
	}
	return toDomainTasks(models), nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	var created taskModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statusID, err := findStatusID(tx, task.Status.Code)
		if err != nil {
			return err
		}

		model := taskModel{
			ID:          newID(task.ID),
			CourseID:    task.CourseID,
			CreatorID:   task.CreatorID,
			Title:       task.Title,
			Description: task.Description,
			Deadline:    task.Deadline,
			StatusID:    statusID,
		}
		if task.Priority != nil {
			priorityID, err := findPriorityID(tx, task.Priority.Code)
			if err != nil {
				return err
			}
			model.PriorityID = &priorityID
		}

		if err := tx.Omit("Status", "Priority", "Reminders").Create(&model).Error; err != nil {
			return dbError(err)
		}

		return dbError(tx.Preload("Status").Preload("Priority").Where("id = ?", model.ID).First(&created).Error)
	})
	if err != nil {
		return err
	}

	*task = *created.toDomain()
	return nil
}

func (r *taskRepository) GetForOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	if !isUUID(id) || !isUUID(ownerID) {
		return nil, domain.ErrTaskNotFound
	}

	var model taskModel
	err := r.withLookups(ctx).
		Preload("Reminders", func(db *gorm.DB) *gorm.DB {
			return db.Order("reminders.remind_at ASC")
		}).
		Where("id = ? AND course_id IN (?)", id, ownedCourseIDs(r.db, ownerID)).
		First(&model).Error
	if err != nil {
		return nil, mapError(err, domain.ErrTaskNotFound)
	}

	task := model.toDomain()
	task.Reminders = make([]domain.Reminder, 0, len(model.Reminders))
	for i := range model.Reminders {
		task.Reminders = append(task.Reminders, *model.Reminders[i].toDomain())
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id, ownerID string, update domain.TaskUpdate) (*domain.Task, error) {
	if !isUUID(id) || !isUUID(ownerID) {
		return nil, domain.ErrTaskNotFound
	}

	var model taskModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND course_id IN (?)", id, ownedCourseIDs(tx, ownerID)).First(&model).Error
		if err != nil {
			return mapError(err, domain.ErrTaskNotFound)
		}

		changes := map[string]any{}
		if update.Title != nil {
			changes["title"] = *update.Title
		}
		if update.Description != nil {
			changes["description"] = *update.Description
		}
		if update.Deadline != nil {
			changes["deadline"] = *update.Deadline
		}
		if update.StatusCode != nil {
			statusID, err := findStatusID(tx, *update.StatusCode)
			if err != nil {
				return err
			}
			changes["status_id"] = statusID
		}
		switch {
		case update.ClearPriority:
			changes["priority_id"] = nil
		case update.PriorityCode != nil:
			priorityID, err := findPriorityID(tx, *update.PriorityCode)
			if err != nil {
				return err
			}
			changes["priority_id"] = priorityID
		}

		if len(changes) > 0 {
			if err := tx.Model(&taskModel{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return dbError(err)
			}
		}

		model = taskModel{}
		return dbError(tx.Preload("Status").Preload("Priority").Where("id = ?", id).First(&model).Error)
	})
	if err != nil {
		return nil, err
	}

	return model.toDomain(), nil
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !isUUID(id) || !isUUID(ownerID) {
		return domain.ErrTaskNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND course_id IN (?)", id, ownedCourseIDs(r.db, ownerID)).
		Delete(&taskModel{})
	if result.Error != nil {
		return dbError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
