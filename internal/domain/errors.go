package domain

import "errors"

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidStatus        = errors.New("invalid task status code")
	ErrInvalidPriority      = errors.New("invalid task priority code")
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
)

// IsNotFound reports whether err denotes a missing or foreign resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrReminderNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsInvalidInput reports whether err was caused by a bad request payload.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPriority)
}
