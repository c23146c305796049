package live

import (
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/msto2/bid-tool/model"
)

func drainConnected(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case ev := <-s.Events():
		if ev.Type != EventConnected {
			t.Fatalf("expected a '%s' event first, got '%s'", EventConnected, ev.Type)
		}
	default:
		t.Fatal("expected the connected event to be queued immediately")
	}
}

func TestSubscribe_sendsConnectedEvent(t *testing.T) {
	h := NewHub(clock.NewMock())

	s := h.Subscribe()
	defer s.Unsubscribe()

	drainConnected(t, s)
	if h.ViewerCount() != 1 {
		t.Errorf("expected 1 viewer, got %d", h.ViewerCount())
	}
}

func TestBroadcast_deliversToActiveViewers(t *testing.T) {
	h := NewHub(clock.NewMock())

	s1 := h.Subscribe()
	s2 := h.Subscribe()
	drainConnected(t, s1)
	drainConnected(t, s2)

	h.Broadcast(Event{Type: EventNewBid, Message: "Average Joes has placed a bid"})

	for _, s := range []*Subscription{s1, s2} {
		select {
		case ev := <-s.Events():
			if ev.Message != "Average Joes has placed a bid" {
				t.Errorf("unexpected message: '%s'", ev.Message)
			}
		default:
			t.Error("expected the event to be delivered")
		}
	}
}

func TestBroadcast_removesIdleViewers(t *testing.T) {
	mock := clock.NewMock()
	h := NewHub(mock)

	idle := h.Subscribe()
	drainConnected(t, idle)

	mock.Add(6 * time.Minute)

	fresh := h.Subscribe()
	drainConnected(t, fresh)

	h.Broadcast(Event{Type: EventNewBid, Message: "bid"})

	select {
	case ev := <-fresh.Events():
		if ev.Type != EventNewBid {
			t.Errorf("expected a new_bid event, got '%s'", ev.Type)
		}
	default:
		t.Error("expected delivery to the fresh viewer")
	}

	// The idle viewer was removed and its channel closed.
	if h.ViewerCount() != 1 {
		t.Errorf("expected 1 viewer after the broadcast, got %d", h.ViewerCount())
	}
	if _, ok := <-idle.Events(); ok {
		t.Error("expected the idle viewer's channel to be closed without the event")
	}
}

func TestBroadcast_removesStuckViewers(t *testing.T) {
	h := NewHub(clock.NewMock())

	stuck := h.Subscribe() // never drained

	// Fill the remaining buffer, then one more to trip removal.
	for i := 0; i < sendBuffer; i++ {
		h.Broadcast(Event{Type: EventNewBid, Message: "fill"})
	}

	if h.ViewerCount() != 0 {
		t.Errorf("expected the stuck viewer to be removed, %d still registered", h.ViewerCount())
	}

	// The queued events are still readable, then the channel closes.
	n := 0
	for range stuck.Events() {
		n++
	}
	if n != sendBuffer {
		t.Errorf("expected %d buffered events, got %d", sendBuffer, n)
	}
}

func TestUnsubscribe_idempotent(t *testing.T) {
	h := NewHub(clock.NewMock())

	s := h.Subscribe()
	s.Unsubscribe()
	s.Unsubscribe()

	if h.ViewerCount() != 0 {
		t.Errorf("expected 0 viewers, got %d", h.ViewerCount())
	}

	// Broadcasting after removal must not panic on the closed channel.
	h.Broadcast(Event{Type: EventNewBid, Message: "bid"})
}

func TestBidPlaced_buildsNotification(t *testing.T) {
	mock := clock.NewMock()
	mock.Add(1 * time.Hour)
	h := NewHub(mock)

	s := h.Subscribe()
	drainConnected(t, s)

	h.BidPlaced(model.Bid{
		PlayerID: 101,
		Bidder:   model.Bidder{TeamID: "A", Name: "Average Joes"},
	})

	select {
	case ev := <-s.Events():
		if ev.Type != EventNewBid {
			t.Errorf("expected type '%s', got '%s'", EventNewBid, ev.Type)
		}
		if ev.Message != "Average Joes has placed a bid" {
			t.Errorf("unexpected message: '%s'", ev.Message)
		}
		if ev.Timestamp != mock.Now().UnixMilli() {
			t.Errorf("expected timestamp %d, got %d", mock.Now().UnixMilli(), ev.Timestamp)
		}
	default:
		t.Error("expected a notification")
	}
}
