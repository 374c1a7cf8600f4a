package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

var stateNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func testNotification(taskID string, severity domain.Severity, createdAt time.Time) domain.Notification {
	return domain.Notification{
		ID:        domain.NotificationID(taskID, severity),
		TaskID:    taskID,
		TaskTitle: "title " + taskID,
		Deadline:  createdAt.Add(time.Hour),
		Severity:  severity,
		Message:   "Due in 1 hour",
		CreatedAt: createdAt,
	}
}

// runNotificationStateContract exercises behavior every state store shares.
func runNotificationStateContract(t *testing.T, newRepo func(t *testing.T) domain.NotificationStateRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty session", func(t *testing.T) {
		repo := newRepo(t)

		suppressed, err := repo.SuppressedIDs(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(suppressed) != 0 {
			t.Errorf("got %d suppressed ids, want 0", len(suppressed))
		}

		active, err := repo.ListActive(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(active) != 0 {
			t.Errorf("got %d active notifications, want 0", len(active))
		}
	})

	t.Run("commit suppresses and activates", func(t *testing.T) {
		repo := newRepo(t)
		later := testNotification("b", domain.SeverityUrgent, stateNow.Add(time.Minute))
		earlier := testNotification("a", domain.SeverityWarning, stateNow)

		if err := repo.Commit(ctx, "user-1", []domain.Notification{later, earlier}); err != nil {
			t.Fatalf("Commit: %v", err)
		}

		suppressed, err := repo.SuppressedIDs(ctx, "user-1")
		if err != nil {
			t.Fatalf("SuppressedIDs: %v", err)
		}
		for _, id := range []string{"a:warning", "b:urgent"} {
			if _, ok := suppressed[id]; !ok {
				t.Errorf("expected %q to be suppressed", id)
			}
		}

		active, err := repo.ListActive(ctx, "user-1")
		if err != nil {
			t.Fatalf("ListActive: %v", err)
		}
		if len(active) != 2 {
			t.Fatalf("got %d active notifications, want 2", len(active))
		}
		if active[0].ID != "a:warning" || active[1].ID != "b:urgent" {
			t.Errorf("active order: got [%s %s], want [a:warning b:urgent]", active[0].ID, active[1].ID)
		}
		if !active[0].CreatedAt.Equal(earlier.CreatedAt) || active[0].TaskTitle != earlier.TaskTitle {
			t.Errorf("stored notification mismatch: %+v", active[0])
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Commit(ctx, "user-1", []domain.Notification{testNotification("a", domain.SeverityWarning, stateNow)}); err != nil {
			t.Fatalf("Commit: %v", err)
		}

		suppressed, err := repo.SuppressedIDs(ctx, "user-2")
		if err != nil {
			t.Fatalf("SuppressedIDs: %v", err)
		}
		if len(suppressed) != 0 {
			t.Errorf("user-2 sees %d suppressed ids, want 0", len(suppressed))
		}
	})

	t.Run("remove drops active and suppression", func(t *testing.T) {
		repo := newRepo(t)
		n1 := testNotification("a", domain.SeverityWarning, stateNow)
		n2 := testNotification("b", domain.SeverityOverdue, stateNow)
		if err := repo.Commit(ctx, "user-1", []domain.Notification{n1, n2}); err != nil {
			t.Fatalf("Commit: %v", err)
		}

		if err := repo.Remove(ctx, "user-1", n1.ID); err != nil {
			t.Fatalf("Remove: %v", err)
		}

		suppressed, _ := repo.SuppressedIDs(ctx, "user-1")
		if _, ok := suppressed[n1.ID]; ok {
			t.Errorf("%q still suppressed after Remove", n1.ID)
		}
		if _, ok := suppressed[n2.ID]; !ok {
			t.Errorf("%q should stay suppressed", n2.ID)
		}

		active, _ := repo.ListActive(ctx, "user-1")
		if len(active) != 1 || active[0].ID != n2.ID {
			t.Errorf("active after Remove: %+v", active)
		}
	})

	t.Run("clear drops everything", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Commit(ctx, "user-1", []domain.Notification{testNotification("a", domain.SeverityWarning, stateNow)}); err != nil {
			t.Fatalf("Commit: %v", err)
		}

		if err := repo.Clear(ctx, "user-1"); err != nil {
			t.Fatalf("Clear: %v", err)
		}

		suppressed, _ := repo.SuppressedIDs(ctx, "user-1")
		active, _ := repo.ListActive(ctx, "user-1")
		if len(suppressed) != 0 || len(active) != 0 {
			t.Errorf("state left after Clear: suppressed=%d active=%d", len(suppressed), len(active))
		}
	})
}

func runSessionRegistryContract(t *testing.T, newRegistry func(t *testing.T, ttl time.Duration) domain.SessionRegistry) {
	t.Helper()
	ctx := context.Background()

	t.Run("register and expire", func(t *testing.T) {
		registry := newRegistry(t, time.Hour)

		if err := registry.Register(ctx, "fresh", stateNow); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if err := registry.Register(ctx, "stale", stateNow.Add(-2*time.Hour)); err != nil {
			t.Fatalf("Register: %v", err)
		}

		active, err := registry.Active(ctx, stateNow)
		if err != nil {
			t.Fatalf("Active: %v", err)
		}
		if len(active) != 1 || active[0] != "fresh" {
			t.Errorf("active: got %v, want [fresh]", active)
		}
	})

	t.Run("register refreshes", func(t *testing.T) {
		registry := newRegistry(t, time.Hour)

		_ = registry.Register(ctx, "user-1", stateNow.Add(-2*time.Hour))
		_ = registry.Register(ctx, "user-1", stateNow)

		active, err := registry.Active(ctx, stateNow)
		if err != nil {
			t.Fatalf("Active: %v", err)
		}
		if len(active) != 1 {
			t.Errorf("active: got %v, want [user-1]", active)
		}
	})

	t.Run("unregister", func(t *testing.T) {
		registry := newRegistry(t, time.Hour)

		_ = registry.Register(ctx, "user-1", stateNow)
		if err := registry.Unregister(ctx, "user-1"); err != nil {
			t.Fatalf("Unregister: %v", err)
		}

		active, err := registry.Active(ctx, stateNow)
		if err != nil {
			t.Fatalf("Active: %v", err)
		}
		if len(active) != 0 {
			t.Errorf("active: got %v, want none", active)
		}
	})
}
