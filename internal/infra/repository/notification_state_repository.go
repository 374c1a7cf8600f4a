package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/situgas/internal/domain"
)

const (
	suppressedKeySegment = ":suppressed:"
	activeKeySegment     = ":active:"
	sessionsKeySegment   = ":sessions"

	defaultKeyPrefix  = "situgas"
	defaultSessionTTL = 24 * time.Hour
)

type notificationRecord struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	Deadline  time.Time `json:"deadline"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationStateRepository struct {
	client     *redis.Client
	keyPrefix  string
	sessionTTL time.Duration
}

// NewNotificationStateRepository stores the suppression set as a Redis set
// and active notifications as a hash keyed by notification id. Both keys
// expire after sessionTTL without a poll.
func NewNotificationStateRepository(client *redis.Client, keyPrefix string, sessionTTL time.Duration) domain.NotificationStateRepository {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &notificationStateRepository{
		client:     client,
		keyPrefix:  keyPrefix,
		sessionTTL: sessionTTL,
	}
}

func (r *notificationStateRepository) suppressedKey(userID string) string {
	return r.keyPrefix + suppressedKeySegment + userID
}

func (r *notificationStateRepository) activeKey(userID string) string {
	return r.keyPrefix + activeKeySegment + userID
}

func (r *notificationStateRepository) SuppressedIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	suppressedKey := r.suppressedKey(userID)

	pipe := r.client.TxPipeline()
	members := pipe.SMembers(ctx, suppressedKey)
	pipe.Expire(ctx, suppressedKey, r.sessionTTL)
	pipe.Expire(ctx, r.activeKey(userID), r.sessionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	ids := members.Val()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *notificationStateRepository) Commit(ctx context.Context, userID string, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	ids := make([]any, 0, len(notifications))
	fields := make([]any, 0, len(notifications)*2)
	for _, n := range notifications {
		data, err := json.Marshal(toNotificationRecord(n))
		if err != nil {
			return ErrInvalidNotificationData
		}
		ids = append(ids, n.ID)
		fields = append(fields, n.ID, data)
	}

	suppressedKey := r.suppressedKey(userID)
	activeKey := r.activeKey(userID)

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, suppressedKey, ids...)
	pipe.HSet(ctx, activeKey, fields...)
	pipe.Expire(ctx, suppressedKey, r.sessionTTL)
	pipe.Expire(ctx, activeKey, r.sessionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

func (r *notificationStateRepository) ListActive(ctx context.Context, userID string) ([]domain.Notification, error) {
	values, err := r.client.HGetAll(ctx, r.activeKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	notifications := make([]domain.Notification, 0, len(values))
	for _, raw := range values {
		var record notificationRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, ErrInvalidNotificationData
		}
		notifications = append(notifications, record.toDomain())
	}

	domain.SortNotifications(notifications)
	return notifications, nil
}

func (r *notificationStateRepository) Remove(ctx context.Context, userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	members := make([]any, 0, len(ids))
	for _, id := range ids {
		members = append(members, id)
	}

	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, r.suppressedKey(userID), members...)
	pipe.HDel(ctx, r.activeKey(userID), ids...)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

func (r *notificationStateRepository) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.suppressedKey(userID), r.activeKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

func toNotificationRecord(n domain.Notification) notificationRecord {
	return notificationRecord{
		ID:        n.ID,
		TaskID:    n.TaskID,
		TaskTitle: n.TaskTitle,
		Deadline:  n.Deadline,
		Severity:  n.Severity.String(),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}

func (r notificationRecord) toDomain() domain.Notification {
	return domain.Notification{
		ID:        r.ID,
		TaskID:    r.TaskID,
		TaskTitle: r.TaskTitle,
		Deadline:  r.Deadline,
		Severity:  domain.Severity(r.Severity),
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}
