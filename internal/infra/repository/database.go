package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenPostgres connects through the pgx driver and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string, pool PoolOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.NewSlogLogger(slog.Default(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnection, err)
	}

	return db, nil
}

// Migrate syncs the schema and seeds the lookup tables. Seeding is
// idempotent; labels of existing codes are refreshed.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&userModel{},
		&taskStatusModel{},
		&taskPriorityModel{},
		&courseModel{},
		&taskModel{},
		&reminderModel{},
		&auditLogModel{},
		&loginLogModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	statuses := make([]taskStatusModel, 0, 3)
	for _, s := range domain.DefaultTaskStatuses() {
		statuses = append(statuses, taskStatusModel{Code: s.Code.String(), Label: s.Label})
	}
	priorities := make([]taskPriorityModel, 0, 3)
	for _, p := range domain.DefaultTaskPriorities() {
		priorities = append(priorities, taskPriorityModel{Code: p.Code.String(), Label: p.Label})
	}

	upsertLabel := clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"label"}),
	}
	if err := db.WithContext(ctx).Clauses(upsertLabel).Create(&statuses).Error; err != nil {
		return fmt.Errorf("failed to seed task statuses: %w", err)
	}
	if err := db.WithContext(ctx).Clauses(upsertLabel).Create(&priorities).Error; err != nil {
		return fmt.Errorf("failed to seed task priorities: %w", err)
	}

	return nil
}

// isUUID filters ids before they reach uuid columns, where a malformed
// value is a query error rather than a miss.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// mapError turns a gorm miss into notFound and wraps everything else.
func mapError(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %w", ErrDatabaseQuery, err)
}

func dbError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrDatabaseQuery, err)
}
