package config

import "time"

const (
	reminderPollIntervalEnv = "REMINDER_POLL_INTERVAL"
	reminderSessionTTLEnv   = "REMINDER_SESSION_TTL"
	reminderConcurrencyEnv  = "REMINDER_POLL_CONCURRENCY"

	defaultReminderPollInterval = 60 * time.Second
	defaultReminderSessionTTL   = 24 * time.Hour
	defaultReminderConcurrency  = 8
)

type ReminderConfig struct {
	PollInterval time.Duration
	SessionTTL   time.Duration
	Concurrency  int
}

func LoadReminderConfig() (*ReminderConfig, error) {
	interval, err := envDuration(reminderPollIntervalEnv, defaultReminderPollInterval)
	if err != nil {
		return nil, err
	}

	ttl, err := envDuration(reminderSessionTTLEnv, defaultReminderSessionTTL)
	if err != nil {
		return nil, err
	}

	concurrency, ok := envInt(reminderConcurrencyEnv, defaultReminderConcurrency)
	if !ok {
		return nil, ErrInvalidConcurrency
	}

	return &ReminderConfig{
		PollInterval: interval,
		SessionTTL:   ttl,
		Concurrency:  concurrency,
	}, nil
}

func (c *ReminderConfig) Validate() error {
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.SessionTTL <= c.PollInterval {
		return ErrInvalidSessionTTL
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
