package catalog

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type DashboardService struct {
	courses domain.CourseRepository
	tasks   domain.TaskRepository
}

func NewDashboardService(courses domain.CourseRepository, tasks domain.TaskRepository) *DashboardService {
	return &DashboardService{courses: courses, tasks: tasks}
}

// Stats summarizes the owner's workload at now. Upcoming deadlines are open
// tasks whose deadline lies in the future.
func (s *DashboardService) Stats(ctx context.Context, ownerID string, now time.Time) (*domain.DashboardStats, error) {
	var (
		courses []domain.Course
		tasks   []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.courses.ListByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to list courses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.ListByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		TotalCourses: len(courses),
		TotalTasks:   len(tasks),
	}
	for i := range tasks {
		if tasks[i].IsCompleted() {
			stats.CompletedTasks++
			continue
		}
		if tasks[i].Deadline.After(now) {
			stats.UpcomingDeadlines++
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionPercentage = int(math.Round(float64(stats.CompletedTasks) * 100 / float64(stats.TotalTasks)))
	}

	return stats, nil
}
