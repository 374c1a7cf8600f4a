package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/observability/metrics"
)

var testActor = Actor{UserID: "user-1", IPAddress: "10.0.0.1"}

func ptr[T any](v T) *T {
	return &v
}

func TestCourseService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateCourseInput
		wantErr   error
		expectDB  bool
		wantTitle string
	}{
		{
			name:      "valid course",
			input:     CreateCourseInput{Title: "Algorithms", Color: ptr("#123456")},
			expectDB:  true,
			wantTitle: "Algorithms",
		},
		{
			name:    "missing title",
			input:   CreateCourseInput{Title: "   "},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "title too long",
			input:   CreateCourseInput{Title: strings.Repeat("a", 256)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "color too long",
			input:   CreateCourseInput{Title: "Algorithms", Color: ptr(strings.Repeat("c", 21))},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			courses := domain.NewMockCourseRepository(ctrl)
			audits := domain.NewMockAuditRepository(ctrl)
			reg := prometheus.NewRegistry()
			catalogMetrics := metrics.NewCatalogMetrics(reg)

			if tt.expectDB {
				courses.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *domain.Course) error {
						if c.OwnerID != testActor.UserID {
							t.Errorf("owner: got %q, want %q", c.OwnerID, testActor.UserID)
						}
						c.ID = "course-1"
						return nil
					})
				audits.EXPECT().
					RecordAudit(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, log domain.AuditLog) error {
						if log.Action != domain.AuditActionCreate || log.ObjectType != domain.AuditObjectCourse ||
							log.ObjectID != "course-1" || log.IPAddress != "10.0.0.1" {
							t.Errorf("unexpected audit log: %+v", log)
						}
						return nil
					})
			}

			svc := NewCourseService(courses, audits, catalogMetrics)
			course, err := svc.Create(context.Background(), testActor, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if course.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", course.Title, tt.wantTitle)
			}
			if got := testutil.ToFloat64(catalogMetrics.CoursesCreated); got != 1 {
				t.Errorf("courses created counter: got %v, want 1", got)
			}
		})
	}
}

func TestCourseService_AuditFailureDoesNotFailMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courses := domain.NewMockCourseRepository(ctrl)
	audits := domain.NewMockAuditRepository(ctrl)

	courses.EXPECT().Delete(gomock.Any(), "course-1", testActor.UserID).Return(nil)
	audits.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	svc := NewCourseService(courses, audits, nil)
	if err := svc.Delete(context.Background(), testActor, "course-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCourseService_DeleteForeignCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	courses := domain.NewMockCourseRepository(ctrl)
	audits := domain.NewMockAuditRepository(ctrl)

	courses.EXPECT().Delete(gomock.Any(), "course-9", testActor.UserID).Return(domain.ErrCourseNotFound)

	svc := NewCourseService(courses, audits, nil)
	if err := svc.Delete(context.Background(), testActor, "course-9"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestCourseService_UpdateRejectsEmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewCourseService(domain.NewMockCourseRepository(ctrl), domain.NewMockAuditRepository(ctrl), nil)
	_, err := svc.Update(context.Background(), testActor, "course-1", domain.CourseUpdate{Title: ptr("")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}
