package config

import "errors"

// ValidateForRun checks everything the API server needs before it starts.
func ValidateForRun(cfg *Config) error {
	return errors.Join(
		cfg.Database.Validate(),
		cfg.Redis.Validate(),
		cfg.Auth.Validate(),
		cfg.Reminder.Validate(),
		cfg.PushQueue.Validate(),
	)
}
