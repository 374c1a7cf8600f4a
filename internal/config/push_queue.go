package config

import "os"

const defaultPushQueueMaxRetries = 3

type PushQueueConfig struct {
	WebhookURL    string
	WebhookSecret string

	GCloudProjectID           string
	GCloudLocationID          string
	GCloudQueueID             string
	GCloudTargetURL           string
	GCloudServiceAccountEmail string

	MaxRetries int
}

func LoadPushQueueConfig() PushQueueConfig {
	maxRetries, ok := envInt("PUSH_QUEUE_MAX_RETRIES", defaultPushQueueMaxRetries)
	if !ok || maxRetries <= 0 {
		maxRetries = defaultPushQueueMaxRetries
	}

	return PushQueueConfig{
		WebhookURL:    os.Getenv("PUSH_WEBHOOK_URL"),
		WebhookSecret: os.Getenv("PUSH_WEBHOOK_SECRET"),

		GCloudProjectID:           os.Getenv("GCLOUD_PROJECT_ID"),
		GCloudLocationID:          os.Getenv("GCLOUD_LOCATION_ID"),
		GCloudQueueID:             os.Getenv("GCLOUD_QUEUE_ID"),
		GCloudTargetURL:           os.Getenv("GCLOUD_TARGET_URL"),
		GCloudServiceAccountEmail: os.Getenv("GCLOUD_SERVICE_ACCOUNT_EMAIL"),

		MaxRetries: maxRetries,
	}
}
