package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) domain.LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) ListStatuses(ctx context.Context) ([]domain.TaskStatus, error) {
	var models []taskStatusModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err)
	}

	statuses := make([]domain.TaskStatus, 0, len(models))
	for _, m := range models {
		statuses = append(statuses, m.toDomain())
	}
	return statuses, nil
}

func (r *lookupRepository) ListPriorities(ctx context.Context) ([]domain.TaskPriority, error) {
	var models []taskPriorityModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err)
	}

	priorities := make([]domain.TaskPriority, 0, len(models))
	for _, m := range models {
		priorities = append(priorities, m.toDomain())
	}
	return priorities, nil
}

func findStatusID(tx *gorm.DB, code domain.StatusCode) (uint, error) {
	var status taskStatusModel
	err := tx.Where("code = ?", code.String()).First(&status).Error
	if err != nil {
		return 0, mapError(err, domain.ErrInvalidStatus)
	}
	return status.ID, nil
}

func findPriorityID(tx *gorm.DB, code domain.PriorityCode) (uint, error) {
	var priority taskPriorityModel
	err := tx.Where("code = ?", code.String()).First(&priority).Error
	if err != nil {
		return 0, mapError(err, domain.ErrInvalidPriority)
	}
	return priority.ID, nil
}
