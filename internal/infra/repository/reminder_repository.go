package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) domain.ReminderRepository {
	return &reminderRepository{db: db}
}

func ownedTaskIDs(db *gorm.DB, ownerID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&taskModel{}).
		Select("id").
		Where("course_id IN (?)", ownedCourseIDs(db, ownerID))
}

// ListByTask returns the task's reminders by ascending time. Ownership of
// the task is checked by the caller.
func (r *reminderRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Reminder, error) {
	if !isUUID(taskID) {
		return []domain.Reminder{}, nil
	}

	var models []reminderModel
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("remind_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, dbError(err)
	}

	reminders := make([]domain.Reminder, 0, len(models))
	for i := range models {
		reminders = append(reminders, *models[i].toDomain())
	}
	return reminders, nil
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	model := reminderModel{
		ID:       newID(reminder.ID),
		TaskID:   reminder.TaskID,
		RemindAt: reminder.RemindAt,
		Sent:     reminder.Sent,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return dbError(err)
	}

	*reminder = *model.toDomain()
	return nil
}

func (r *reminderRepository) GetForOwner(ctx context.Context, id, ownerID string) (*domain.Reminder, error) {
	if !isUUID(id) || !isUUID(ownerID) {
		return nil, domain.ErrReminderNotFound
	}

	var model reminderModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND task_id IN (?)", id, ownedTaskIDs(r.db, ownerID)).
		First(&model).Error
	if err != nil {
		return nil, mapError(err, domain.ErrReminderNotFound)
	}
	return model.toDomain(), nil
}

func (r *reminderRepository) Update(ctx context.Context, id, ownerID string, update domain.ReminderUpdate) (*domain.Reminder, error) {
	if !isUUID(id) || !isUUID(ownerID) {
		return nil, domain.ErrReminderNotFound
	}

	var model reminderModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND task_id IN (?)", id, ownedTaskIDs(tx, ownerID)).First(&model).Error
		if err != nil {
			return mapError(err, domain.ErrReminderNotFound)
		}

		changes := map[string]any{}
		if update.RemindAt != nil {
			changes["remind_at"] = *update.RemindAt
		}
		if update.Sent != nil {
			changes["sent"] = *update.Sent
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&reminderModel{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return dbError(err)
		}
		model = reminderModel{}
		return dbError(tx.Where("id = ?", id).First(&model).Error)
	})
	if err != nil {
		return nil, err
	}

	return model.toDomain(), nil
}

func (r *reminderRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !isUUID(id) || !isUUID(ownerID) {
		return domain.ErrReminderNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND task_id IN (?)", id, ownedTaskIDs(r.db, ownerID)).
		Delete(&reminderModel{})
	if result.Error != nil {
		return dbError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}
