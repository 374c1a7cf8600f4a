package repository

import "errors"

var (
	ErrRedisConnection         = errors.New("redis connection error")
	ErrInvalidNotificationData = errors.New("invalid notification data")
	ErrDatabaseConnection      = errors.New("database connection error")
	ErrDatabaseQuery           = errors.New("database query error")
)
