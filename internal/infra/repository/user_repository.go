package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/situgas/internal/domain"
)

const defaultProvider = "email"

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func newUserModel(user *domain.User) userModel {
	provider := user.Provider
	if provider == "" {
		provider = defaultProvider
	}
	return userModel{
		ID:       user.ID,
		Email:    strings.ToLower(user.Email),
		FullName: user.FullName,
		Provider: provider,
		IsActive: true,
	}
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	model := newUserModel(user)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "provider", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return dbError(err)
	}

	*user = *model.toDomain()
	return nil
}

func (r *userRepository) FirstOrCreate(ctx context.Context, user *domain.User) (*domain.User, error) {
	if !isUUID(user.ID) {
		return nil, domain.ErrUserNotFound
	}

	var model userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", user.ID).
		Attrs(newUserModel(user)).
		FirstOrCreate(&model).Error
	if err != nil {
		return nil, dbError(err)
	}
	return model.toDomain(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !isUUID(id) {
		return nil, domain.ErrUserNotFound
	}

	var model userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}
	return model.toDomain(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model userModel
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&model).Error
	if err != nil {
		return nil, mapError(err, domain.ErrUserNotFound)
	}
	return model.toDomain(), nil
}
