package domain

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditObjectType string

const (
	AuditObjectCourse AuditObjectType = "course"
	AuditObjectTask   AuditObjectType = "task"
)

type AuditLog struct {
	UserID     string
	Action     AuditAction
	ObjectType AuditObjectType
	ObjectID   string
	IPAddress  string
	CreatedAt  time.Time
}

type LoginLog struct {
	UserID    *string
	Provider  string
	Success   bool
	IPAddress string
	UserAgent string
	Browser   string
	OS        string
	Mobile    bool
	CreatedAt time.Time
}
