package domain

import "context"

//go:generate mockgen -source=user_repository.go -destination=user_repository_mock.go -package=domain

type UserRepository interface {
	// Upsert inserts the user or overwrites email, name and provider.
	Upsert(ctx context.Context, user *User) error
	// FirstOrCreate returns the stored user, creating it from user when absent.
	FirstOrCreate(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type AuditRepository interface {
	RecordAudit(ctx context.Context, log AuditLog) error
	RecordLogin(ctx context.Context, log LoginLog) error
}
