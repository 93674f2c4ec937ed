package pubsub

import "github.com/garnizeh/leaddesk/internal/models"

// Handler receives one published lead event. Handlers must be safe to call
// from the publisher's goroutine and should return quickly (typically a
// buffered channel send). A handler must not call Subscribe or an
// unsubscribe function from within its own invocation: delivery runs under
// the broadcaster's lock and re-entering it deadlocks.
type Handler func(models.LeadEvent)

// Broadcaster decouples lead writers from any number of concurrent live
// readers within one process. Swap the driver (Local → RabbitMQ, Redis
// pub/sub, etc.) without touching application code.
type Broadcaster interface {
	// Publish delivers the event to every currently registered subscriber in
	// registration order. Publishing with zero subscribers is a no-op. A
	// panicking handler never prevents delivery to the remaining subscribers
	// and never propagates to the publisher.
	Publish(event models.LeadEvent)

	// Subscribe registers a handler and returns the function that removes
	// exactly that handler. Calling the returned function more than once is
	// safe.
	Subscribe(h Handler) (unsubscribe func())
}
