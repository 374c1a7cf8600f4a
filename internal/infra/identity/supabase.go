package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KasumiMercury/situgas/internal/observability/logging"
	"github.com/KasumiMercury/situgas/internal/observability/tracing"
)

const maxErrorBody = 4096

// SupabaseClient talks to the GoTrue REST API of a Supabase project.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewSupabaseClient(baseURL, anonKey string) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var (
	_ Provider      = (*SupabaseClient)(nil)
	_ TokenVerifier = (*SupabaseClient)(nil)
)

func (c *SupabaseClient) SignUp(ctx context.Context, email, password, fullName string) (*Identity, *Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}

	var resp supabaseAuthResponse
	status, err := c.do(ctx, "signup", http.MethodPost, "/auth/v1/signup", "", body, &resp)
	if err != nil {
		return nil, nil, err
	}
	if status >= 400 && status < 500 {
		return nil, nil, fmt.Errorf("%w: status %d", ErrSignUpRejected, status)
	}

	user := resp.User
	if user == nil {
		user = &supabaseUser{ID: resp.ID, Email: resp.Email}
	}
	if user.ID == "" {
		return nil, nil, fmt.Errorf("%w: sign up returned no user", ErrProviderFailure)
	}
	id := user.toIdentity()
	if id.FullName == "" {
		id.FullName = fullName
	}

	var session *Session
	if resp.AccessToken != "" {
		session = &resp.Session
	}
	return id, session, nil
}

func (c *SupabaseClient) SignIn(ctx context.Context, email, password string) (*Identity, *Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp supabaseAuthResponse
	status, err := c.do(ctx, "token", http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp)
	if err != nil {
		return nil, nil, err
	}
	if status >= 400 && status < 500 {
		return nil, nil, ErrInvalidCredentials
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, nil, fmt.Errorf("%w: token grant returned no session", ErrProviderFailure)
	}

	return resp.User.toIdentity(), &resp.Session, nil
}

func (c *SupabaseClient) SignOut(ctx context.Context, accessToken string) error {
	status, err := c.do(ctx, "logout", http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrInvalidToken
	}
	return nil
}

// Verify asks the auth service who owns the token.
func (c *SupabaseClient) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	var user supabaseUser
	status, err := c.do(ctx, "user", http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	if err != nil {
		return nil, err
	}
	if status >= 400 && status < 500 {
		return nil, ErrInvalidToken
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return user.toIdentity(), nil
}

// do sends the request and decodes a 2xx body into out. Client errors are
// returned as a status with a nil error so callers can map them; server
// errors and transport failures become ErrProviderFailure.
func (c *SupabaseClient) do(ctx context.Context, operation, method, path, bearer string, body, out any) (int, error) {
	url := c.baseURL + path

	ctx, span := tracing.StartExternalAPISpan(ctx, "supabase."+operation, url)
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set(logging.RequestIDHeader, logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordError(span, err)
		slog.ErrorContext(ctx, "failed to reach identity provider",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr supabaseError
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(data, &apiErr)

		if resp.StatusCode >= 500 {
			err := fmt.Errorf("%w: status %d: %s", ErrProviderFailure, resp.StatusCode, apiErr.text())
			tracing.RecordError(span, err)
			slog.ErrorContext(ctx, "identity provider error",
				slog.String("operation", operation),
				slog.Int("status_code", resp.StatusCode),
				slog.String("message", apiErr.text()),
			)
			return resp.StatusCode, err
		}

		slog.InfoContext(ctx, "identity provider rejected request",
			slog.String("operation", operation),
			slog.Int("status_code", resp.StatusCode),
			slog.String("message", apiErr.text()),
		)
		return resp.StatusCode, nil
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: failed to decode response: %w", ErrProviderFailure, err)
		}
	}

	tracing.RecordError(span, nil)
	return resp.StatusCode, nil
}
