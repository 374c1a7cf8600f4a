package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/situgas/internal/observability/metrics"
	"github.com/KasumiMercury/situgas/internal/observability/tracing"
	"github.com/KasumiMercury/situgas/internal/service/notify"
)

const defaultConcurrency = 8

//go:generate mockgen -source=scheduler.go -destination=mock.go -package=scheduler

// Poller is the part of the notification service the scheduler drives.
type Poller interface {
	Sessions(ctx context.Context, now time.Time) ([]string, error)
	Poll(ctx context.Context, userID string, now time.Time) (*notify.PollResult, error)
}

type TickResult struct {
	Sessions int
	Emitted  int
	Failed   int
}

// Scheduler polls every live session on a fixed interval.
type Scheduler struct {
	poller          Poller
	interval        time.Duration
	concurrency     int
	clock           func() time.Time
	reminderMetrics *metrics.ReminderMetrics
}

func New(poller Poller, interval time.Duration, concurrency int, reminderMetrics *metrics.ReminderMetrics) *Scheduler {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Scheduler{
		poller:          poller,
		interval:        interval,
		concurrency:     concurrency,
		clock:           time.Now,
		reminderMetrics: reminderMetrics,
	}
}

// Run ticks once right away and then every interval until ctx is done.
// Ticks run inline, so a slow tick delays the next one instead of overlapping.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "reminder scheduler started",
		slog.Duration("interval", s.interval),
		slog.Int("concurrency", s.concurrency),
	)

	s.runTick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "reminder scheduler stopped")
			return nil
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) {
	if _, err := s.Tick(ctx, s.clock()); err != nil {
		slog.ErrorContext(ctx, "reminder tick failed",
			slog.String("event", "scheduler.tick.fail"),
			slog.String("error", err.Error()),
		)
	}
}

// Tick polls each live session once at now. A failing poll is logged and
// counted; it does not stop the others.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (*TickResult, error) {
	ctx, span := tracing.StartSchedulerTickSpan(ctx, now)
	defer span.End()

	users, err := s.poller.Sessions(ctx, now)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordSchedulerTick(ctx, len(users))
	}

	var emitted, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for _, userID := range users {
		g.Go(func() error {
			result, err := s.poller.Poll(ctx, userID, now)
			if err != nil {
				failed.Add(1)
				slog.WarnContext(ctx, "scheduled poll failed",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			emitted.Add(int64(len(result.Emitted)))
			return nil
		})
	}
	_ = g.Wait()

	result := &TickResult{
		Sessions: len(users),
		Emitted:  int(emitted.Load()),
		Failed:   int(failed.Load()),
	}
	tracing.RecordSchedulerTickResult(span, result.Sessions, result.Failed)

	slog.DebugContext(ctx, "reminder tick completed",
		slog.Int("session_count", result.Sessions),
		slog.Int("emitted_count", result.Emitted),
		slog.Int("failed_count", result.Failed),
	)

	return result, nil
}
