package services

import "context"

// EventNotifier publishes business lifecycle events to an external analytics sink.
// Implementations must never fail the calling operation; delivery is best effort.
type EventNotifier interface {
	// Notify emits one event attributed to actorID. Safe to call after commit only.
	Notify(ctx context.Context, event string, actorID string, properties map[string]any)

	// Close flushes buffered events and releases the underlying client.
	Close() error
}
