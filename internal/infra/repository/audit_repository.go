package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) domain.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) RecordAudit(ctx context.Context, log domain.AuditLog) error {
	model := auditLogModel{
		UserID:     log.UserID,
		Action:     string(log.Action),
		ObjectType: string(log.ObjectType),
		ObjectID:   log.ObjectID,
		IPAddress:  log.IPAddress,
		CreatedAt:  log.CreatedAt,
	}
	return dbError(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *auditRepository) RecordLogin(ctx context.Context, log domain.LoginLog) error {
	model := loginLogModel{
		UserID:    log.UserID,
		Provider:  log.Provider,
		Success:   log.Success,
		IPAddress: log.IPAddress,
		UserAgent: log.UserAgent,
		Browser:   log.Browser,
		OS:        log.OS,
		Mobile:    log.Mobile,
		CreatedAt: log.CreatedAt,
	}
	return dbError(r.db.WithContext(ctx).Create(&model).Error)
}
