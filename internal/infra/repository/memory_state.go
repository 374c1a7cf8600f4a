package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type memorySession struct {
	suppressed map[string]struct{}
	active     map[string]domain.Notification
}

// MemoryState keeps notification state and sessions in process. It backs the
// command line watcher and tests; state is lost on exit.
type MemoryState struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	seen     map[string]time.Time
	ttl      time.Duration
}

func NewMemoryState(sessionTTL time.Duration) *MemoryState {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &MemoryState{
		sessions: make(map[string]*memorySession),
		seen:     make(map[string]time.Time),
		ttl:      sessionTTL,
	}
}

var (
	_ domain.NotificationStateRepository = (*MemoryState)(nil)
	_ domain.SessionRegistry             = (*MemoryState)(nil)
)

// session returns the user's state, creating it. Read paths look the map up
// directly so unknown users leave nothing behind.
func (m *MemoryState) session(userID string) *memorySession {
	s, ok := m.sessions[userID]
	if !ok {
		s = &memorySession{
			suppressed: make(map[string]struct{}),
			active:     make(map[string]domain.Notification),
		}
		m.sessions[userID] = s
	}
	return s
}

func (m *MemoryState) SuppressedIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return make(map[string]struct{}), nil
	}
	set := make(map[string]struct{}, len(s.suppressed))
	for id := range s.suppressed {
		set[id] = struct{}{}
	}
	return set, nil
}

func (m *MemoryState) Commit(_ context.Context, userID string, notifications []domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session(userID)
	for _, n := range notifications {
		s.suppressed[n.ID] = struct{}{}
		s.active[n.ID] = n
	}
	return nil
}

func (m *MemoryState) ListActive(_ context.Context, userID string) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return []domain.Notification{}, nil
	}
	notifications := make([]domain.Notification, 0, len(s.active))
	for _, n := range s.active {
		notifications = append(notifications, n)
	}
	domain.SortNotifications(notifications)
	return notifications, nil
}

func (m *MemoryState) Remove(_ context.Context, userID string, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil
	}
	for _, id := range ids {
		delete(s.suppressed, id)
		delete(s.active, id)
	}
	if len(s.suppressed) == 0 && len(s.active) == 0 {
		delete(m.sessions, userID)
	}
	return nil
}

func (m *MemoryState) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

func (m *MemoryState) Register(_ context.Context, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen[userID] = now
	return nil
}

func (m *MemoryState) Unregister(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.seen, userID)
	return nil
}

func (m *MemoryState) Active(_ context.Context, now time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-m.ttl)
	users := make([]string, 0, len(m.seen))
	for userID, seen := range m.seen {
		if seen.Before(cutoff) {
			delete(m.seen, userID)
			continue
		}
		users = append(users, userID)
	}
	slices.Sort(users)
	return users, nil
}
