package config

import "errors"

var (
	ErrRedisAddrMissing    = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseDSNMissing  = errors.New("DATABASE_URL or DB_HOST is required")
	ErrInvalidDatabasePort = errors.New("DB_PORT must be a valid port number")
	ErrSupabaseURLMissing  = errors.New("SUPABASE_URL is required")
	ErrSupabaseKeyMissing  = errors.New("SUPABASE_ANON_KEY is required")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrInvalidPollInterval = errors.New("REMINDER_POLL_INTERVAL must be positive")
	ErrInvalidSessionTTL   = errors.New("REMINDER_SESSION_TTL must be longer than the poll interval")
	ErrInvalidConcurrency  = errors.New("REMINDER_POLL_CONCURRENCY must be a positive integer")
	ErrPushQueueIncomplete = errors.New("push queue configuration is incomplete")
)
