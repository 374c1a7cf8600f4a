//go:build !gcloud

package pushqueue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testMessage() *PushMessage {
	return &PushMessage{
		NotificationID: "task-1:urgent",
		UserID:         "user-1",
		TaskID:         "task-1",
		Title:          "Essay draft",
		Body:           "Due in 30 minutes",
		Severity:       "urgent",
		Deadline:       time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC),
	}
}

func TestWebhookClient_Enqueue_Success(t *testing.T) {
	var received webhookEnvelope
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s, want POST", r.Method)
		}
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"push-42","accepted_at":"2024-03-10T12:00:01Z"}`))
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, "s3cret", 3)

	resp, err := client.Enqueue(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Name != "push-42" {
		t.Errorf("name: got %q, want %q", resp.Name, "push-42")
	}
	if want := time.Date(2024, 3, 10, 12, 0, 1, 0, time.UTC); !resp.CreateTime.Equal(want) {
		t.Errorf("create time: got %v, want %v", resp.CreateTime, want)
	}
	if authHeader != "Bearer s3cret" {
		t.Errorf("authorization: got %q, want %q", authHeader, "Bearer s3cret")
	}
	if received.Message == nil || received.Message.NotificationID != "task-1:urgent" {
		t.Errorf("unexpected payload: %+v", received.Message)
	}
	if received.Attempt != 1 {
		t.Errorf("attempt: got %d, want 1", received.Attempt)
	}
}

func TestWebhookClient_Enqueue_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, "", 3)

	resp, err := client.Enqueue(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls: got %d, want 3", got)
	}
	if resp.Name != "task-1:urgent" {
		t.Errorf("name: got %q, want notification id fallback", resp.Name)
	}
}

func TestWebhookClient_Enqueue_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, "", 3)

	_, err := client.Enqueue(context.Background(), testMessage())
	if !errors.Is(err, ErrPermanent) {
		t.Fatalf("expected ErrPermanent, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls: got %d, want 1", got)
	}
}

func TestWebhookClient_Enqueue_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, "", 2)

	if _, err := client.Enqueue(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls: got %d, want 2", got)
	}
}

func TestBackoffFor(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := backoffFor(tt.attempt); got != tt.want {
			t.Errorf("backoffFor(%d): got %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
