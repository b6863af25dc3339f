package port

import "context"

// EventListenerPort consumes external events and runs the matching use case.
type EventListenerPort interface {
	// Start blocks until ctx is cancelled or the listener fails.
	Start(ctx context.Context) error

	// Close stops the listener after in-flight messages are handled.
	Close() error
}
