// Package live pushes bid notifications to every connected viewer. Delivery
// is best effort: slow or dead consumers are dropped, and clients are
// expected to reconcile through a full bid fetch when they reconnect.
package live

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/msto2/bid-tool/model"
)

const (
	// A connection that has not accepted an event for this long is
	// presumed dead and removed at the next broadcast.
	idleTimeout = 5 * time.Minute

	// Buffered so a briefly busy consumer does not force its own removal.
	sendBuffer = 16
)

const (
	EventConnected = "connected"
	EventNewBid    = "new_bid"
)

// Event is the payload pushed to viewers.
type Event struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Subscription is one viewer's handle on the event stream. Events() is
// closed when the hub removes the connection, so consumers can simply range
// over it.
type Subscription struct {
	hub          *Hub
	events       chan Event
	active       bool
	lastActivity time.Time
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Unsubscribe removes the connection from the hub. Safe to call more than
// once and safe to call after the hub already dropped the connection.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

// Hub owns the registry of viewer connections. A single mutex guards the
// registry; everything the hub does under it is non-blocking, so a stuck
// consumer can never stall a broadcast.
type Hub struct {
	clock clock.Clock

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub(c clock.Clock) *Hub {
	return &Hub{
		clock: c,
		subs:  make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new viewer and immediately queues the connection
// acknowledgment event.
func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{
		hub:          h,
		events:       make(chan Event, sendBuffer),
		active:       true,
		lastActivity: h.clock.Now(),
	}
	// The channel is fresh and buffered, this send cannot block.
	s.events <- Event{Type: EventConnected, Message: "Connected to bid notifications"}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	total := len(h.subs)
	h.mu.Unlock()

	log.Printf("viewer connected, %d total", total)
	return s
}

// Broadcast delivers the event to every live connection. Connections that
// are idle past the timeout, or whose buffer is full, are removed instead.
func (h *Hub) Broadcast(ev Event) {
	now := h.clock.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		if !s.active || now.Sub(s.lastActivity) > idleTimeout {
			h.dropLocked(s)
			continue
		}
		select {
		case s.events <- ev:
			s.lastActivity = now
		default:
			// The consumer stopped draining its channel. Same treatment
			// as an idle timeout.
			h.dropLocked(s)
		}
	}
}

// BidPlaced satisfies ledger.Notifier.
func (h *Hub) BidPlaced(bid model.Bid) {
	h.Broadcast(Event{
		Type:      EventNewBid,
		Message:   fmt.Sprintf("%s has placed a bid", bid.Bidder.Name),
		Timestamp: h.clock.Now().UnixMilli(),
	})
}

// ViewerCount reports how many connections are currently registered.
func (h *Hub) ViewerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(s)
}

// dropLocked must be called with h.mu held. Closing the events channel is
// what tells the transport goroutine to stop.
func (h *Hub) dropLocked(s *Subscription) {
	if !s.active {
		return
	}
	s.active = false
	delete(h.subs, s)
	close(s.events)
	log.Printf("viewer disconnected, %d total", len(h.subs))
}
