package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newSupabaseServer(t *testing.T, handler http.HandlerFunc) *SupabaseClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSupabaseClient(server.URL+"/", "anon-key")
}

func TestSupabaseClient_SignIn(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantUserID string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{"access_token":"token-1","refresh_token":"refresh-1","token_type":"bearer","expires_in":3600,
				"user":{"id":"user-1","email":"a@example.com","user_metadata":{"full_name":"Ani"},"app_metadata":{"provider":"email"}}}`,
			wantUserID: "user-1",
		},
		{
			name:    "bad credentials",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid_grant","error_description":"Invalid login credentials"}`,
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "provider down",
			status:  http.StatusBadGateway,
			body:    `{"msg":"upstream"}`,
			wantErr: ErrProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newSupabaseServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL)
				}
				if r.Header.Get("apikey") != "anon-key" {
					t.Errorf("apikey header missing")
				}
				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				if body["email"] != "a@example.com" || body["password"] != "secret1" {
					t.Errorf("unexpected body: %v", body)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			id, session, err := client.SignIn(context.Background(), "a@example.com", "secret1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.UserID != tt.wantUserID || id.FullName != "Ani" || id.Provider != "email" {
				t.Errorf("unexpected identity: %+v", id)
			}
			if session.AccessToken != "token-1" || session.ExpiresIn != 3600 {
				t.Errorf("unexpected session: %+v", session)
			}
		})
	}
}

func TestSupabaseClient_SignUp(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantSession bool
	}{
		{
			name:        "confirmed immediately",
			status:      http.StatusOK,
			body:        `{"access_token":"token-1","user":{"id":"user-1","email":"a@example.com"}}`,
			wantSession: true,
		},
		{
			name:   "confirmation pending",
			status: http.StatusOK,
			body:   `{"id":"user-1","email":"a@example.com"}`,
		},
		{
			name:    "already registered",
			status:  http.StatusUnprocessableEntity,
			body:    `{"code":422,"msg":"User already registered"}`,
			wantErr: ErrSignUpRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newSupabaseServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/v1/signup" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				var body struct {
					Data map[string]string `json:"data"`
				}
				_ = json.NewDecoder(r.Body).Decode(&body)
				if body.Data["full_name"] != "Ani" {
					t.Errorf("full_name not sent: %v", body.Data)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			id, session, err := client.SignUp(context.Background(), "a@example.com", "secret1", "Ani")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.UserID != "user-1" || id.FullName != "Ani" {
				t.Errorf("unexpected identity: %+v", id)
			}
			if (session != nil) != tt.wantSession {
				t.Errorf("session presence: got %v, want %v", session != nil, tt.wantSession)
			}
		})
	}
}

func TestSupabaseClient_Verify(t *testing.T) {
	client := newSupabaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"user-1","email":"a@example.com"}`))
	})

	id, err := client.Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "user-1" {
		t.Errorf("user id: got %q", id.UserID)
	}

	if _, err := client.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestSupabaseClient_SignOut(t *testing.T) {
	called := false
	client := newSupabaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/logout" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.SignOut(context.Background(), "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("logout endpoint not called")
	}
}
