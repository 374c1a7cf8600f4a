package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification_state.go -destination=notification_state_mock.go -package=domain

// NotificationStateRepository holds the per-session reminder state: the
// suppression set and the list of active notifications.
type NotificationStateRepository interface {
	SuppressedIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	// Commit stores notifications as active and adds their ids to the
	// suppression set in one step.
	Commit(ctx context.Context, userID string, notifications []Notification) error
	ListActive(ctx context.Context, userID string) ([]Notification, error)
	// Remove drops ids from both the active list and the suppression set.
	Remove(ctx context.Context, userID string, ids ...string) error
	// Clear drops all state of the session.
	Clear(ctx context.Context, userID string) error
}

// SessionRegistry tracks which users currently run a reminder session.
type SessionRegistry interface {
	Register(ctx context.Context, userID string, now time.Time) error
	Unregister(ctx context.Context, userID string) error
	// Active returns sessions seen within the registry TTL and prunes the rest.
	Active(ctx context.Context, now time.Time) ([]string, error)
}
