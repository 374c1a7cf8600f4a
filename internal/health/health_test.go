package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]PingFunc
		wantStatus int
		wantFailed string
	}{
		{name: "no dependencies", checks: nil, wantStatus: http.StatusOK},
		{name: "all healthy", checks: map[string]PingFunc{"postgres": ok, "redis": ok}, wantStatus: http.StatusOK},
		{name: "redis down", checks: map[string]PingFunc{"postgres": ok, "redis": down}, wantStatus: http.StatusServiceUnavailable, wantFailed: "redis"},
		{name: "nil probe ignored", checks: map[string]PingFunc{"postgres": nil}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker("test")
			for name, ping := range tt.checks {
				checker.Register(name, ping)
			}

			r := gin.New()
			r.GET("/health/ready", checker.ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatus)
			}

			var status HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if status.Version != "test" {
				t.Errorf("got version %q, want test", status.Version)
			}
			if tt.wantFailed != "" {
				if got := status.Checks[tt.wantFailed]; got.Status != StatusUnhealthy || got.Error == "" {
					t.Errorf("expected %s to be reported unhealthy, got %+v", tt.wantFailed, got)
				}
			}
			if _, present := status.Checks["postgres"]; tt.name == "nil probe ignored" && present {
				t.Error("nil probe should not be registered")
			}
		})
	}
}

func TestRedisPing_NilClient(t *testing.T) {
	if RedisPing(nil) != nil {
		t.Error("expected nil probe for nil client")
	}
	if PostgresPing(nil) != nil {
		t.Error("expected nil probe for nil db")
	}
}
