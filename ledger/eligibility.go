package ledger

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/msto2/bid-tool/espn"
)

// eligibilityTTL is how long a fetched free-agent snapshot is trusted before
// a read will trigger a new backend fan-out.
const eligibilityTTL = 30 * time.Second

// eligibilityCache holds the set of player ids that may receive bids. It is
// refreshed lazily: the first read past the TTL pays for the backend fan-out
// while concurrent readers keep using the previous snapshot. A refresh that
// fails outright keeps the old snapshot rather than blanking it, so bidding
// degrades to slightly stale data instead of rejecting everything.
type eligibilityCache struct {
	espn  espn.Client
	clock clock.Clock

	mu          sync.Mutex
	ids         map[int]struct{}
	lastRefresh time.Time
	refreshing  bool
}

func newEligibilityCache(c clock.Clock, espnClient espn.Client) *eligibilityCache {
	return &eligibilityCache{
		espn:  espnClient,
		clock: c,
		ids:   make(map[int]struct{}),
	}
}

// current returns the freshest eligibility snapshot available. Only the
// caller that finds the TTL expired pays for a refresh; everyone else keeps
// the existing snapshot. The returned map is shared and must be treated as
// read-only.
func (e *eligibilityCache) current(ctx context.Context) map[int]struct{} {
	e.mu.Lock()
	now := e.clock.Now()
	if e.refreshing || (!e.lastRefresh.IsZero() && now.Sub(e.lastRefresh) < eligibilityTTL) {
		ids := e.ids
		e.mu.Unlock()
		return ids
	}
	e.refreshing = true
	e.mu.Unlock()

	// The fan-out runs without the lock held so readers are never blocked
	// behind the network.
	ids, err := e.espn.FreeAgentIDs(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshing = false
	if err != nil {
		// Keep the previous snapshot. An empty set is only correct when
		// there has never been a successful fetch.
		log.Printf("free-agent refresh failed, keeping snapshot of %d ids: %v", len(e.ids), err)
		return e.ids
	}
	e.ids = ids
	e.lastRefresh = e.clock.Now()
	return e.ids
}

func (e *eligibilityCache) isEligible(ctx context.Context, playerID int) bool {
	_, ok := e.current(ctx)[playerID]
	return ok
}
