package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/infra/identity"
	"github.com/KasumiMercury/situgas/internal/infra/repository"
	"github.com/KasumiMercury/situgas/internal/service/auth"
	"github.com/KasumiMercury/situgas/internal/service/catalog"
	"github.com/KasumiMercury/situgas/internal/service/notify"
	"github.com/KasumiMercury/situgas/internal/service/reminder"
)

const (
	testToken  = "valid-token"
	testUserID = "0b6f1c7e-8a65-4a4e-9d6c-2f7a4c3b1e11"
)

var handlerNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if token != testToken {
		return nil, domain.ErrUnauthorized
	}
	return &domain.User{ID: testUserID, Email: "ani@example.com", FullName: "Ani", IsActive: true}, nil
}

type stubLookups struct{}

func (stubLookups) ListStatuses(context.Context) ([]domain.TaskStatus, error) {
	return domain.DefaultTaskStatuses(), nil
}

func (stubLookups) ListPriorities(context.Context) ([]domain.TaskPriority, error) {
	return domain.DefaultTaskPriorities(), nil
}

type staticSource []reminder.Task

func (s staticSource) ListTasks(context.Context, string) ([]reminder.Task, error) {
	return s, nil
}

type testEnv struct {
	engine  *gin.Engine
	courses *domain.MockCourseRepository
	tasks   *domain.MockTaskRepository
	audits  *domain.MockAuditRepository
	state   *repository.MemoryState
}

func newTestEnv(t *testing.T, source notify.TaskSource) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	env := &testEnv{
		courses: domain.NewMockCourseRepository(ctrl),
		tasks:   domain.NewMockTaskRepository(ctrl),
		audits:  domain.NewMockAuditRepository(ctrl),
		state:   repository.NewMemoryState(time.Hour),
	}
	reminders := domain.NewMockReminderRepository(ctrl)

	notifyService := notify.NewService(source, env.state, env.state, nil)
	notificationHandler := NewNotificationHandler(notifyService)
	notificationHandler.clock = func() time.Time { return handlerNow }

	authService := auth.NewService(
		identity.NewMockProvider(ctrl),
		identity.NewMockTokenVerifier(ctrl),
		domain.NewMockUserRepository(ctrl),
		env.audits,
		notifyService,
		nil,
	)
	taskService := catalog.NewTaskService(env.courses, env.tasks, env.audits, nil)

	env.engine = gin.New()
	RegisterRoutes(env.engine, Handlers{
		Auth:         NewAuthHandler(authService),
		Courses:      NewCourseHandler(catalog.NewCourseService(env.courses, env.audits, nil), taskService),
		Tasks:        NewTaskHandler(taskService, catalog.NewReminderService(env.tasks, reminders, nil)),
		Lookups:      NewLookupHandler(stubLookups{}, catalog.NewDashboardService(env.courses, env.tasks)),
		Notification: notificationHandler,
	}, RequireAuth(stubAuthenticator{}))

	return env
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("failed to decode data %q: %v", envelope.Data, err)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv(t, staticSource{})
	env.courses.EXPECT().ListByOwner(gomock.Any(), testUserID).Return([]domain.Course{}, nil)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "missing bearer", token: "", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", token: "expired", wantStatus: http.StatusUnauthorized},
		{name: "valid token", token: testToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, "/api/v1/courses", tt.token, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized && decodeError(t, w).Error != "unauthorized" {
				t.Errorf("unexpected error body %s", w.Body.String())
			}
		})
	}
}

func TestLookups_ArePublic(t *testing.T) {
	env := newTestEnv(t, staticSource{})

	w := env.do(http.MethodGet, "/api/v1/lookups/task-statuses", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	var statuses []domain.TaskStatus
	decodeData(t, w, &statuses)
	if len(statuses) != 3 || statuses[2].Code != domain.StatusCompleted {
		t.Errorf("unexpected statuses %+v", statuses)
	}
}

func TestCourseHandler_ShowForeignCourse(t *testing.T) {
	env := newTestEnv(t, staticSource{})
	env.courses.EXPECT().
		GetForOwner(gomock.Any(), "course-9", testUserID).
		Return(nil, domain.ErrCourseNotFound)

	w := env.do(http.MethodGet, "/api/v1/courses/course-9", testToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
	if got := decodeError(t, w).Error; got != "not_found" {
		t.Errorf("got error code %q, want not_found", got)
	}
}

func TestCourseHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{name: "created", body: map[string]any{"title": "Kalkulus", "color": "#ff0000"}, wantStatus: http.StatusCreated},
		{name: "missing title", body: map[string]any{"color": "#ff0000"}, wantStatus: http.StatusBadRequest},
		{name: "color too long", body: map[string]any{"title": "Kalkulus", "color": "a-very-long-color-name"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, staticSource{})
			if tt.wantStatus == http.StatusCreated {
				env.courses.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, course *domain.Course) error {
						course.ID = "course-1"
						return nil
					})
				env.audits.EXPECT().
					RecordAudit(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, log domain.AuditLog) error {
						if log.Action != domain.AuditActionCreate || log.ObjectID != "course-1" || log.IPAddress == "" {
							t.Errorf("unexpected audit log %+v", log)
						}
						return nil
					})
			}

			w := env.do(http.MethodPost, "/api/v1/courses", testToken, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var course domain.Course
			decodeData(t, w, &course)
			if course.ID != "course-1" || course.OwnerID != testUserID || course.Title != "Kalkulus" {
				t.Errorf("unexpected course %+v", course)
			}
		})
	}
}

func TestCourseHandler_CreateTask(t *testing.T) {
	t.Run("rejects malformed deadline", func(t *testing.T) {
		env := newTestEnv(t, staticSource{})
		w := env.do(http.MethodPost, "/api/v1/courses/course-1/tasks", testToken, map[string]any{
			"title":       "Essay",
			"deadline":    "next tuesday",
			"status_code": "belum",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400", w.Code)
		}
	})

	t.Run("accepts datetime-local deadline", func(t *testing.T) {
		env := newTestEnv(t, staticSource{})
		env.courses.EXPECT().
			GetForOwner(gomock.Any(), "course-1", testUserID).
			Return(&domain.Course{ID: "course-1", OwnerID: testUserID}, nil)
		env.tasks.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task *domain.Task) error {
				want := time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)
				if !task.Deadline.Equal(want) {
					t.Errorf("got deadline %v, want %v", task.Deadline, want)
				}
				if task.Priority == nil || task.Priority.Code != domain.PriorityHigh {
					t.Errorf("unexpected priority %+v", task.Priority)
				}
				task.ID = "task-1"
				return nil
			})
		env.audits.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

		w := env.do(http.MethodPost, "/api/v1/courses/course-1/tasks", testToken, map[string]any{
			"title":         "Essay",
			"deadline":      "2024-03-12T23:59",
			"status_code":   "belum",
			"priority_code": "high",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("got status %d, want 201: %s", w.Code, w.Body.String())
		}
	})
}

func TestTaskHandler_UpdateClearsPriority(t *testing.T) {
	env := newTestEnv(t, staticSource{})
	existing := &domain.Task{ID: "task-1", Status: domain.TaskStatus{Code: domain.StatusInProgress}}

	env.tasks.EXPECT().GetForOwner(gomock.Any(), "task-1", testUserID).Return(existing, nil)
	env.tasks.EXPECT().
		Update(gomock.Any(), "task-1", testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, update domain.TaskUpdate) (*domain.Task, error) {
			if !update.ClearPriority || update.PriorityCode != nil {
				t.Errorf("expected priority to be cleared, got %+v", update)
			}
			return existing, nil
		})
	env.audits.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)

	w := env.do(http.MethodPatch, "/api/v1/tasks/task-1", testToken, map[string]any{"priority_code": ""})
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestTaskHandler_CreateReminderRequiresTime(t *testing.T) {
	env := newTestEnv(t, staticSource{})

	w := env.do(http.MethodPost, "/api/v1/tasks/task-1/reminders", testToken, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
}

func TestNotificationHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t, staticSource{
		{ID: "task-1", Title: "Essay", Deadline: handlerNow.Add(30 * time.Minute)},
	})

	w := env.do(http.MethodPost, "/api/v1/notifications/check", testToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check: got status %d: %s", w.Code, w.Body.String())
	}
	var result notify.PollResult
	decodeData(t, w, &result)
	if len(result.Emitted) != 1 || result.Emitted[0].Severity != domain.SeverityUrgent {
		t.Fatalf("unexpected poll result %+v", result)
	}
	id := result.Emitted[0].ID

	sessions, err := env.state.Active(context.Background(), handlerNow)
	if err != nil || len(sessions) != 1 || sessions[0] != testUserID {
		t.Errorf("check should register the session, got %v (%v)", sessions, err)
	}

	w = env.do(http.MethodPost, "/api/v1/notifications/check", testToken, nil)
	decodeData(t, w, &result)
	if len(result.Emitted) != 0 {
		t.Errorf("second check emitted %d notifications, want 0", len(result.Emitted))
	}

	w = env.do(http.MethodGet, "/api/v1/notifications", testToken, nil)
	var active []domain.Notification
	decodeData(t, w, &active)
	if len(active) != 1 || active[0].ID != id {
		t.Fatalf("unexpected active list %+v", active)
	}

	w = env.do(http.MethodDelete, "/api/v1/notifications/"+id, testToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("dismiss: got status %d, want 204", w.Code)
	}

	w = env.do(http.MethodDelete, "/api/v1/notifications/"+id, testToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second dismiss: got status %d, want 404", w.Code)
	}

	w = env.do(http.MethodDelete, "/api/v1/notifications/session", testToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("end session: got status %d, want 204", w.Code)
	}
	sessions, _ = env.state.Active(context.Background(), handlerNow)
	if len(sessions) != 0 {
		t.Errorf("session still registered: %v", sessions)
	}
}

func TestNotificationHandler_ListKeepsSessionAlive(t *testing.T) {
	env := newTestEnv(t, staticSource{})
	w := env.do(http.MethodGet, "/api/v1/notifications", testToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: got status %d: %s", w.Code, w.Body.String())
	}

	sessions, err := env.state.Active(context.Background(), handlerNow)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(sessions) != 1 || sessions[0] != testUserID {
		t.Errorf("listing notifications should refresh the session, got %v", sessions)
	}
}
