//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/KasumiMercury/situgas/internal/config"
	"github.com/KasumiMercury/situgas/internal/infra/pushqueue"
	"github.com/KasumiMercury/situgas/internal/observability"
	"github.com/KasumiMercury/situgas/internal/observability/logging"
)

func initPushQueue(_ context.Context, cfg *config.Config) (pushqueue.PushQueue, func() error, error) {
	if cfg.PushQueue.WebhookURL == "" {
		slog.Warn("PUSH_WEBHOOK_URL not set, push delivery disabled")

		return nil, nil, nil
	}

	queue := pushqueue.NewWebhookClient(
		cfg.PushQueue.WebhookURL,
		cfg.PushQueue.WebhookSecret,
		cfg.PushQueue.MaxRetries,
	)

	slog.Info("push queue initialized",
		slog.String("type", "webhook"),
		slog.String("url", cfg.PushQueue.WebhookURL),
	)

	return queue, nil, nil
}

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "situgas-api"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: module,
		LogLevel:      level,
	})
}

func wrapHandler(h http.Handler) http.Handler {
	return h
}
