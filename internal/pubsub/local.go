package pubsub

import (
	"log/slog"
	"sync"

	"github.com/garnizeh/leaddesk/internal/models"
)

// softSubscriberLimit is not enforced; crossing it only logs a warning so an
// unbounded subscriber leak (a gateway forgetting to unsubscribe) is visible.
const softSubscriberLimit = 200

// Local is the in-process Broadcaster driver. Suitable for single-process
// deployments; replace with a network-aware driver for multi-instance setups.
type Local struct {
	mu       sync.Mutex
	nextID   uint64
	order    []uint64
	handlers map[uint64]Handler
	logger   *slog.Logger
}

var _ Broadcaster = (*Local)(nil)

func NewLocal(logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		handlers: make(map[uint64]Handler),
		logger:   logger,
	}
}

// Publish delivers to all subscribers in registration order. The lock is held
// for the whole delivery so that two racing publishes cannot interleave their
// deliveries to the same subscriber out of order; handlers are expected to be
// cheap channel sends, so the critical section stays short.
func (l *Local) Publish(event models.LeadEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range l.order {
		h, ok := l.handlers[id]
		if !ok {
			continue
		}
		l.deliver(id, h, event)
	}
}

// deliver isolates one handler invocation: a panic is logged and swallowed so
// it cannot break delivery to the remaining subscribers.
func (l *Local) deliver(id uint64, h Handler, event models.LeadEvent) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("pubsub handler panic",
				slog.Uint64("subscriber", id),
				slog.String("event", event.Type),
				slog.Any("panic", r),
			)
		}
	}()
	h(event)
}

func (l *Local) Subscribe(h Handler) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.handlers[id] = h
	l.order = append(l.order, id)

	if len(l.handlers) > softSubscriberLimit {
		l.logger.Warn("pubsub subscriber count above soft limit",
			slog.Int("subscribers", len(l.handlers)),
			slog.Int("limit", softSubscriberLimit),
		)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.unsubscribe(id)
		})
	}
}

func (l *Local) unsubscribe(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.handlers, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Subscribers reports the current number of registered handlers.
func (l *Local) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handlers)
}
