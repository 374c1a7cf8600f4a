package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/situgas/internal/domain"
)

type sessionRegistry struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSessionRegistry keeps active reminder sessions in a sorted set scored by
// the last time the session was seen.
func NewSessionRegistry(client *redis.Client, keyPrefix string, ttl time.Duration) domain.SessionRegistry {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionRegistry{
		client: client,
		key:    keyPrefix + sessionsKeySegment,
		ttl:    ttl,
	}
}

func (r *sessionRegistry) Register(ctx context.Context, userID string, now time.Time) error {
	err := r.client.ZAdd(ctx, r.key, redis.Z{
		Score:  float64(now.Unix()),
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

func (r *sessionRegistry) Unregister(ctx context.Context, userID string) error {
	if err := r.client.ZRem(ctx, r.key, userID).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

func (r *sessionRegistry) Active(ctx context.Context, now time.Time) ([]string, error) {
	cutoff := now.Add(-r.ttl).Unix()

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, r.key, "-inf", "("+strconv.FormatInt(cutoff, 10))
	members := pipe.ZRange(ctx, r.key, 0, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return members.Val(), nil
}
