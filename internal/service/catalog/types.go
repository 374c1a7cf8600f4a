package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KasumiMercury/situgas/internal/domain"
)

const (
	maxTitleLength = 255
	maxColorLength = 20
)

// Actor identifies who performs a mutation and from where, for audit logs.
type Actor struct {
	UserID    string
	IPAddress string
}

type CreateCourseInput struct {
	Title       string
	Description *string
	Color       *string
}

type CreateTaskInput struct {
	Title        string
	Description  *string
	Deadline     time.Time
	StatusCode   domain.StatusCode
	PriorityCode *domain.PriorityCode
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return validationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return validationError("title must be at most %d characters", maxTitleLength)
	}
	return nil
}

func validateColor(color *string) error {
	if color != nil && utf8.RuneCountInString(*color) > maxColorLength {
		return validationError("color must be at most %d characters", maxColorLength)
	}
	return nil
}

type auditor struct {
	repo  domain.AuditRepository
	clock func() time.Time
}

// record writes an audit entry. A failed write is logged and does not undo
// the mutation it describes.
func (a auditor) record(ctx context.Context, actor Actor, action domain.AuditAction, objectType domain.AuditObjectType, objectID string) {
	if a.repo == nil {
		return
	}

	err := a.repo.RecordAudit(ctx, domain.AuditLog{
		UserID:     actor.UserID,
		Action:     action,
		ObjectType: objectType,
		ObjectID:   objectID,
		IPAddress:  actor.IPAddress,
		CreatedAt:  a.clock(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to write audit log",
			slog.String("event", "audit.write.fail"),
			slog.String("action", string(action)),
			slog.String("object_type", string(objectType)),
			slog.String("object_id", objectID),
			slog.String("error", err.Error()),
		)
	}
}
