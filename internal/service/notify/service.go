package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
	"github.com/KasumiMercury/situgas/internal/observability/tracing"
	"github.com/KasumiMercury/situgas/internal/service/reminder"
)

// Service drives the evaluator for user sessions and owns their
// notification state.
type Service struct {
	source          TaskSource
	state           domain.NotificationStateRepository
	sessions        domain.SessionRegistry
	evaluator       *reminder.Evaluator
	sinks           []Sink
	reminderMetrics *metrics.ReminderMetrics
	locks           *userLocks
}

func NewService(
	source TaskSource,
	state domain.NotificationStateRepository,
	sessions domain.SessionRegistry,
	reminderMetrics *metrics.ReminderMetrics,
	sinks ...Sink,
) *Service {
	return &Service{
		source:          source,
		state:           state,
		sessions:        sessions,
		evaluator:       reminder.NewEvaluator(),
		sinks:           sinks,
		reminderMetrics: reminderMetrics,
		locks:           newUserLocks(),
	}
}

// Poll evaluates the user's tasks at now and emits whatever is not
// suppressed yet. Emitted notifications become active and suppressed before
// sinks see them, so a failing sink never causes a repeat.
func (s *Service) Poll(ctx context.Context, userID string, now time.Time) (*PollResult, error) {
	ctx, span := tracing.StartPollSpan(ctx, userID, now)
	defer span.End()

	unlock := s.locks.lock(userID)
	defer unlock()

	start := time.Now()
	result, err := s.poll(ctx, userID, now)

	if s.reminderMetrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		s.reminderMetrics.RecordPoll(ctx, outcome, time.Since(start))
	}

	if err != nil {
		tracing.RecordPollResult(span, 0, 0, 0, err)
		return nil, err
	}
	tracing.RecordPollResult(span, result.Evaluated, len(result.Emitted), result.Dropped, nil)

	return result, nil
}

func (s *Service) poll(ctx context.Context, userID string, now time.Time) (*PollResult, error) {
	tasks, err := s.source.ListTasks(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load tasks",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	dropped, err := s.reconcile(ctx, userID, tasks)
	if err != nil {
		return nil, err
	}

	suppressed, err := s.state.SuppressedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read suppressed notifications: %w", err)
	}

	emitted := s.evaluator.Evaluate(tasks, now, suppressed)

	slog.DebugContext(ctx, "evaluated tasks",
		slog.String("user_id", userID),
		slog.Int("task_count", len(tasks)),
		slog.Int("suppressed_count", len(suppressed)),
		slog.Int("emitted_count", len(emitted)),
	)

	if len(emitted) > 0 {
		if err := s.state.Commit(ctx, userID, emitted); err != nil {
			return nil, fmt.Errorf("failed to commit notifications: %w", err)
		}

		for _, n := range emitted {
			slog.InfoContext(ctx, "notification emitted",
				slog.String("user_id", userID),
				slog.String("notification_id", n.ID),
				slog.String("severity", n.Severity.String()),
				slog.Time("deadline", n.Deadline),
			)
			if s.reminderMetrics != nil {
				s.reminderMetrics.RecordEmitted(ctx, n.Severity.String())
			}
		}

		s.publish(ctx, userID, emitted)
	}

	return &PollResult{
		Evaluated: len(tasks),
		Emitted:   emitted,
		Dropped:   dropped,
	}, nil
}

// reconcile drops active notifications whose task is completed or gone and
// re-arms their ids.
func (s *Service) reconcile(ctx context.Context, userID string, tasks []reminder.Task) (int, error) {
	active, err := s.state.ListActive(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active notifications: %w", err)
	}
	if len(active) == 0 {
		return 0, nil
	}

	open := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if !task.Completed {
			open[task.ID] = struct{}{}
		}
	}

	var stale []string
	for _, n := range active {
		if _, ok := open[n.TaskID]; !ok {
			stale = append(stale, n.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.state.Remove(ctx, userID, stale...); err != nil {
		return 0, fmt.Errorf("failed to drop stale notifications: %w", err)
	}

	slog.InfoContext(ctx, "dropped notifications of closed tasks",
		slog.String("user_id", userID),
		slog.Int("dropped_count", len(stale)),
	)
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordDropped(ctx, dropReasonReconciled, len(stale))
	}

	return len(stale), nil
}

func (s *Service) publish(ctx context.Context, userID string, notifications []domain.Notification) {
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, userID, notifications); err != nil {
			slog.WarnContext(ctx, "failed to publish notifications",
				slog.String("event", "notify.sink.fail"),
				slog.String("sink", sink.Name()),
				slog.String("user_id", userID),
				slog.Int("notification_count", len(notifications)),
				slog.String("error", err.Error()),
			)
			if s.reminderMetrics != nil {
				s.reminderMetrics.RecordSinkFailure(ctx, sink.Name())
			}
		}
	}
}

// Dismiss removes one active notification. Its id leaves the suppression
// set as well, so it fires again on the next poll if the task still
// qualifies.
func (s *Service) Dismiss(ctx context.Context, userID, notificationID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	active, err := s.state.ListActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list active notifications: %w", err)
	}

	found := false
	for _, n := range active {
		if n.ID == notificationID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotificationNotFound
	}

	if err := s.state.Remove(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("failed to dismiss notification: %w", err)
	}

	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordDropped(ctx, dropReasonDismissed, 1)
	}
	return nil
}

// ClearAll dismisses every active notification and returns how many there were.
func (s *Service) ClearAll(ctx context.Context, userID string) (int, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	active, err := s.state.ListActive(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active notifications: %w", err)
	}
	if len(active) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(active))
	for _, n := range active {
		ids = append(ids, n.ID)
	}
	if err := s.state.Remove(ctx, userID, ids...); err != nil {
		return 0, fmt.Errorf("failed to clear notifications: %w", err)
	}

	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordDropped(ctx, dropReasonCleared, len(ids))
	}
	return len(ids), nil
}

// Reset forgets the whole session state, suppressed ids included.
func (s *Service) Reset(ctx context.Context, userID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.state.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset notification state: %w", err)
	}
	return nil
}

// Active lists the active notifications ordered by creation time, then id.
func (s *Service) Active(ctx context.Context, userID string) ([]domain.Notification, error) {
	active, err := s.state.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active notifications: %w", err)
	}
	domain.SortNotifications(active)
	return active, nil
}

// StartSession registers the user for scheduled polling or refreshes an
// existing registration.
func (s *Service) StartSession(ctx context.Context, userID string, now time.Time) error {
	if err := s.sessions.Register(ctx, userID, now); err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}
	return nil
}

// EndSession stops scheduled polling for the user and resets its state.
func (s *Service) EndSession(ctx context.Context, userID string) error {
	if err := s.sessions.Unregister(ctx, userID); err != nil {
		return fmt.Errorf("failed to unregister session: %w", err)
	}
	return s.Reset(ctx, userID)
}

// Sessions returns users with a live session at now.
func (s *Service) Sessions(ctx context.Context, now time.Time) ([]string, error) {
	users, err := s.sessions.Active(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return users, nil
}
