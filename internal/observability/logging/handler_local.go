//go:build !gcloud

package logging

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// gcpTraceAttrs returns empty for non-GCP environments.
func gcpTraceAttrs(_ trace.SpanContext, _ string) []slog.Attr {
	return nil
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	return a
}
