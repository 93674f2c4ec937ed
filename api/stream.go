package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/garnizeh/leaddesk/internal/models"
	"github.com/garnizeh/leaddesk/internal/pubsub"
)

// heartbeatInterval is how often a comment frame is written so intermediaries
// don't drop the connection as idle.
const heartbeatInterval = 15 * time.Second

// streamBufferSize bounds the per-connection outbound queue. Enqueue is
// fire-and-forget: events beyond a slow client's buffer are dropped, and the
// client recovers by re-querying on its next event or reconnect.
const streamBufferSize = 16

type StreamHandler struct {
	bus pubsub.Broadcaster
}

func NewStreamHandler(bus pubsub.Broadcaster) *StreamHandler {
	return &StreamHandler{bus: bus}
}

// Stream establishes a Server-Sent-Events connection. One broadcaster
// subscription is held for exactly the lifetime of the connection; teardown
// (ticker stop + unsubscribe) runs on every exit path, otherwise dead
// handlers would accumulate in the broadcaster.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	// The server's write timeout would sever the stream after the first
	// interval; this connection is intentionally long-lived.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("stream: clear write deadline", slog.Any("err", err))
	}

	events := make(chan models.LeadEvent, streamBufferSize)
	unsubscribe := h.bus.Subscribe(func(ev models.LeadEvent) {
		select {
		case events <- ev:
		default:
			// Slow client, full buffer: drop. The client re-queries on
			// reconnect anyway.
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	streamConnections.Inc()
	defer streamConnections.Dec()

	// Opening comment frame so proxies forward headers immediately.
	if err := h.writeFrame(w, rc, ": connected\n\n"); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if err := h.writeFrame(w, rc, ": heartbeat\n\n"); err != nil {
				return
			}

		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Error("stream: marshal event", slog.String("type", ev.Type), slog.Any("err", err))
				continue
			}
			if err := h.writeFrame(w, rc, fmt.Sprintf("data: %s\n\n", data)); err != nil {
				return
			}
		}
	}
}

// writeFrame writes one SSE frame and flushes it. An error means the client
// is gone; the caller returns and the deferred teardown runs.
func (h *StreamHandler) writeFrame(w http.ResponseWriter, rc *http.ResponseController, frame string) error {
	if _, err := fmt.Fprint(w, frame); err != nil {
		return err
	}
	return rc.Flush()
}
