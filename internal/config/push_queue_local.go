//go:build !gcloud

package config

// Validate accepts an empty webhook URL; pushes are then disabled.
func (c *PushQueueConfig) Validate() error {
	return nil
}
