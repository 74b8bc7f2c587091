// posthog_client.go provides a wrapper around the posthog.Client to make it easier to use and handle when its not initialized.
package utils

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper publishes lifecycle events to PostHog. A wrapper built
// without an API key swallows every call, so callers never need a nil check.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{}
	}
	logger.Info("Initializing posthog client")
	wrapper := PosthogClientWrapper{}
	wrapper.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	wrapper.logger = logger
	return &wrapper
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.posthogClient != nil
}

// Notify emits one event attributed to actorID. Call only after the owning
// transaction has committed; delivery is best effort.
func (w *PosthogClientWrapper) Notify(_ context.Context, event string, actorID string, properties map[string]any) {
	if w.posthogClient == nil {
		return
	}
	if w.logger != nil {
		w.logger.Info("Enqueueing event", slog.String("actor_id", actorID), slog.String("event", event), slog.Any("properties", properties))
	}
	w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: actorID,
		Event:      event,
		Properties: properties,
	})
}

func (w *PosthogClientWrapper) Close() error {
	if w.posthogClient == nil {
		return nil
	}
	return w.posthogClient.Close()
}
