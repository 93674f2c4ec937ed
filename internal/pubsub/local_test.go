package pubsub

import (
	"sync"
	"testing"

	"github.com/garnizeh/leaddesk/internal/models"
)

func event(typ string) models.LeadEvent {
	return models.LeadEvent{Type: typ, Payload: models.Lead{ID: "lead-1"}}
}

func TestLocal_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewLocal(nil)

	const n = 100
	counts := make([]int, n)
	for i := 0; i < n; i++ {
		i := i
		bus.Subscribe(func(models.LeadEvent) { counts[i]++ })
	}

	bus.Publish(event(models.EventLeadCreated))

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("subscriber %d received %d events, want 1", i, c)
		}
	}
}

func TestLocal_UnsubscribedHandlerNotDelivered(t *testing.T) {
	bus := NewLocal(nil)

	var kept, removed int
	bus.Subscribe(func(models.LeadEvent) { kept++ })
	unsubscribe := bus.Subscribe(func(models.LeadEvent) { removed++ })

	unsubscribe()
	bus.Publish(event(models.EventLeadCreated))

	if kept != 1 {
		t.Fatalf("remaining subscriber received %d events, want 1", kept)
	}
	if removed != 0 {
		t.Fatalf("unsubscribed handler received %d events, want 0", removed)
	}
}

func TestLocal_UnsubscribeIdempotent(t *testing.T) {
	bus := NewLocal(nil)

	var a, b int
	unsubA := bus.Subscribe(func(models.LeadEvent) { a++ })
	bus.Subscribe(func(models.LeadEvent) { b++ })

	// double unsubscribe must not remove the other handler
	unsubA()
	unsubA()

	bus.Publish(event(models.EventLeadUpdated))

	if a != 0 {
		t.Fatalf("unsubscribed handler received %d events, want 0", a)
	}
	if b != 1 {
		t.Fatalf("other subscriber received %d events, want 1", b)
	}
	if got := bus.Subscribers(); got != 1 {
		t.Fatalf("subscriber count = %d, want 1", got)
	}
}

func TestLocal_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewLocal(nil)

	var before, after int
	bus.Subscribe(func(models.LeadEvent) { before++ })
	bus.Subscribe(func(models.LeadEvent) { panic("boom") })
	bus.Subscribe(func(models.LeadEvent) { after++ })

	// must not panic the publisher
	bus.Publish(event(models.EventLeadCreated))

	if before != 1 || after != 1 {
		t.Fatalf("delivery around panicking handler: before=%d after=%d, want 1/1", before, after)
	}
}

func TestLocal_RegistrationOrder(t *testing.T) {
	bus := NewLocal(nil)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(func(models.LeadEvent) { order = append(order, i) })
	}

	bus.Publish(event(models.EventLeadCreated))

	for i, v := range order {
		if v != i {
			t.Fatalf("delivery order %v, want registration order", order)
		}
	}
}

func TestLocal_PublishWithZeroSubscribers(t *testing.T) {
	bus := NewLocal(nil)
	// must be a no-op
	bus.Publish(event(models.EventLeadCreated))
}

func TestLocal_ConcurrentSubscribePublishUnsubscribe(t *testing.T) {
	bus := NewLocal(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe(func(models.LeadEvent) {})
			unsub()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(event(models.EventLeadUpdated))
		}()
	}
	wg.Wait()

	if got := bus.Subscribers(); got != 0 {
		t.Fatalf("subscriber count after churn = %d, want 0", got)
	}
}

func TestLocal_PerSubscriberOrdering(t *testing.T) {
	bus := NewLocal(nil)

	var mu sync.Mutex
	var seen []string
	bus.Subscribe(func(ev models.LeadEvent) {
		mu.Lock()
		seen = append(seen, ev.Payload.ID)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(models.LeadEvent{Type: models.EventLeadCreated, Payload: models.Lead{ID: "x"}})
		}()
	}
	wg.Wait()

	if len(seen) != 20 {
		t.Fatalf("subscriber saw %d events, want 20", len(seen))
	}
}
