//go:build !gcloud

package pushqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/situgas/internal/observability/logging"
	"github.com/KasumiMercury/situgas/internal/observability/tracing"
)

// ErrPermanent marks a delivery the receiver rejected; retrying will not help.
var ErrPermanent = errors.New("push webhook rejected message")

// WebhookClient posts notifications to an HTTP endpoint that fans them out
// to devices.
type WebhookClient struct {
	url        string
	secret     string
	httpClient *http.Client
	maxRetries int
}

func NewWebhookClient(url, secret string, maxRetries int) *WebhookClient {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &WebhookClient{
		url:    url,
		secret: secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *WebhookClient) Enqueue(ctx context.Context, msg *PushMessage) (*EnqueueResponse, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying push delivery",
				slog.String("notification_id", msg.NotificationID),
				slog.String("user_id", msg.UserID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, err
			}
		}

		resp, err := c.post(ctx, msg, attempt+1)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if errors.Is(err, ErrPermanent) {
			break
		}
	}

	slog.ErrorContext(ctx, "push delivery failed",
		slog.String("notification_id", msg.NotificationID),
		slog.String("user_id", msg.UserID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to deliver push message: %w", lastErr)
}

func (c *WebhookClient) post(ctx context.Context, msg *PushMessage, attempt int) (*EnqueueResponse, error) {
	envelope := webhookEnvelope{
		Message:     msg,
		Attempt:     attempt,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if !msg.DeliverAt.IsZero() {
		envelope.DeliverAt = msg.DeliverAt.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push message: %w: %w", ErrPermanent, err)
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "push_webhook", c.url)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to create request: %w: %w", ErrPermanent, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(logging.RequestIDHeader, logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordError(span, err)
		slog.WarnContext(ctx, "failed to send push webhook request",
			slog.String("notification_id", msg.NotificationID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordError(span, err)
		return nil, err
	case resp.StatusCode >= 400:
		err := fmt.Errorf("%w: status %d", ErrPermanent, resp.StatusCode)
		tracing.RecordError(span, err)
		return nil, err
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &EnqueueResponse{
		Name:       msg.NotificationID,
		CreateTime: time.Now(),
	}
	if !msg.DeliverAt.IsZero() {
		result.ScheduleTime = msg.DeliverAt
	}

	var decoded webhookResponse
	if len(respBody) > 0 && json.Unmarshal(respBody, &decoded) == nil {
		if decoded.ID != "" {
			result.Name = decoded.ID
		}
		if acceptedAt, err := time.Parse(time.RFC3339, decoded.AcceptedAt); err == nil {
			result.CreateTime = acceptedAt
		}
	}

	tracing.RecordError(span, nil)
	slog.InfoContext(ctx, "push message delivered",
		slog.String("name", result.Name),
		slog.String("notification_id", msg.NotificationID),
		slog.String("user_id", msg.UserID),
	)

	return result, nil
}
