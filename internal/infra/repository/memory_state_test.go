package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

func TestMemoryState_NotificationState(t *testing.T) {
	runNotificationStateContract(t, func(t *testing.T) domain.NotificationStateRepository {
		return NewMemoryState(time.Hour)
	})
}

func TestMemoryState_SessionRegistry(t *testing.T) {
	runSessionRegistryContract(t, func(t *testing.T, ttl time.Duration) domain.SessionRegistry {
		return NewMemoryState(ttl)
	})
}

func TestMemoryState_SuppressedIDsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	state := NewMemoryState(time.Hour)

	if err := state.Commit(ctx, "user-1", []domain.Notification{testNotification("a", domain.SeverityWarning, stateNow)}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	suppressed, _ := state.SuppressedIDs(ctx, "user-1")
	delete(suppressed, "a:warning")

	again, _ := state.SuppressedIDs(ctx, "user-1")
	if _, ok := again["a:warning"]; !ok {
		t.Error("mutating the returned set changed the stored state")
	}
}

func TestMemoryState_ReadsDoNotCreateSessions(t *testing.T) {
	ctx := context.Background()
	state := NewMemoryState(time.Hour)

	if _, err := state.SuppressedIDs(ctx, "ghost"); err != nil {
		t.Fatalf("SuppressedIDs: %v", err)
	}
	active, err := state.ListActive(ctx, "ghost")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if active == nil || len(active) != 0 {
		t.Errorf("got %v, want empty list", active)
	}
	if err := state.Remove(ctx, "ghost", "a:warning"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if len(state.sessions) != 0 {
		t.Errorf("reads left %d session entries behind", len(state.sessions))
	}
}

func TestMemoryState_RemovingLastNotificationDropsSession(t *testing.T) {
	ctx := context.Background()
	state := NewMemoryState(time.Hour)

	n := testNotification("a", domain.SeverityWarning, stateNow)
	if err := state.Commit(ctx, "user-1", []domain.Notification{n}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := state.Remove(ctx, "user-1", n.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := state.sessions["user-1"]; ok {
		t.Error("empty session entry was kept")
	}
}
