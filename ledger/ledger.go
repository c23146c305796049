package ledger

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/msto2/bid-tool/espn"
	"github.com/msto2/bid-tool/model"
)

// Notifier receives a callback each time a bid is accepted. The live update
// hub implements it; tests substitute a recorder. Deletions are deliberately
// not announced, viewers reconcile those through a full list fetch.
type Notifier interface {
	BidPlaced(bid model.Bid)
}

// Ledger is the authoritative in-memory collection of active bids. It is
// volatile on purpose: restarting the process clears the board. A single
// mutex serializes every operation; the eligibility fan-out happens outside
// it so no bid waits on the network behind another request's refresh.
type Ledger struct {
	clock    clock.Clock
	elig     *eligibilityCache
	notifier Notifier

	mu   sync.Mutex
	bids []model.Bid
}

func New(c clock.Clock, espnClient espn.Client, notifier Notifier) *Ledger {
	return &Ledger{
		clock:    c,
		elig:     newEligibilityCache(c, espnClient),
		notifier: notifier,
	}
}

// List purges bids for players that left the free-agent pool and returns a
// copy of what remains, sorted by bidder name ascending (case-insensitive)
// with newer bids first for the same bidder.
func (l *Ledger) List(ctx context.Context) []model.Bid {
	eligible := l.elig.current(ctx)

	l.mu.Lock()
	l.purgeIneligible(eligible)
	result := make([]model.Bid, len(l.bids))
	copy(result, l.bids)
	l.mu.Unlock()

	sort.SliceStable(result, func(i, j int) bool {
		a := strings.ToLower(result[i].Bidder.Name)
		b := strings.ToLower(result[j].Bidder.Name)
		if a != b {
			return a < b
		}
		return result[i].Timestamp > result[j].Timestamp
	})
	return result
}

// Create validates and stores a bid. A prior bid from the same team for the
// same player is silently replaced. On success the stored bid is returned
// and the notifier is told about it.
func (l *Ledger) Create(ctx context.Context, bid model.Bid) (*model.Bid, error) {
	if missing := bid.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	// Resolve eligibility before taking the ledger lock; this may refresh
	// the free-agent snapshot and hit the network.
	eligible := l.elig.current(ctx)
	if _, ok := eligible[bid.PlayerID]; !ok {
		return nil, ErrPlayerNotEligible
	}

	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	if bid.Timestamp == 0 {
		bid.Timestamp = l.clock.Now().UnixMilli()
	}

	l.mu.Lock()
	kept := l.bids[:0]
	for _, existing := range l.bids {
		if existing.PlayerID == bid.PlayerID && existing.Bidder.TeamID == bid.Bidder.TeamID {
			continue
		}
		kept = append(kept, existing)
	}
	l.bids = append(kept, bid)
	l.mu.Unlock()

	if l.notifier != nil {
		l.notifier.BidPlaced(bid)
	}
	return &bid, nil
}

// Delete removes the bid with the given id. Returns ErrBidNotFound when no
// such bid exists.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, b := range l.bids {
		if b.ID == id {
			l.bids = append(l.bids[:i], l.bids[i+1:]...)
			return nil
		}
	}
	return ErrBidNotFound
}

// Reconcile re-validates every bid against the current free-agent pool and
// drops the ones whose player is gone. Returns how many were removed.
func (l *Ledger) Reconcile(ctx context.Context) int {
	eligible := l.elig.current(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.purgeIneligible(eligible)
}

// purgeIneligible must be called with l.mu held.
func (l *Ledger) purgeIneligible(eligible map[int]struct{}) int {
	kept := l.bids[:0]
	for _, b := range l.bids {
		if _, ok := eligible[b.PlayerID]; ok {
			kept = append(kept, b)
		}
	}
	removed := len(l.bids) - len(kept)
	l.bids = kept
	return removed
}

// RunPeriodicReconciliation drops stale bids on a timer so the board stays
// honest even when nobody is reading it.
func (l *Ledger) RunPeriodicReconciliation(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer ticker.Stop()
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if removed := l.Reconcile(ctx); removed > 0 {
				log.Printf("reconciliation removed %d stale bids", removed)
			}
			cancel()
		}
	}
}
