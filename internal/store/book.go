package store

import (
	"sync"
	"time"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

// OrderBookStore holds the latest order-book snapshot and the derived
// best-bid/best-ask time series. Snapshots are total replacements, never
// merges.
type OrderBookStore struct {
	mu         sync.RWMutex
	current    domain.OrderBookSnapshot
	history    []domain.BestQuotePoint
	maxHistory int

	now func() time.Time
}

// NewOrderBookStore creates a store that retains at most maxHistory derived
// quote points, dropping the oldest first. maxHistory <= 0 disables trimming.
func NewOrderBookStore(maxHistory int) *OrderBookStore {
	return &OrderBookStore{
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Replace discards the previous snapshot, installs snap as current, and
// appends one BestQuotePoint to the derived series. One point is appended per
// snapshot received, even when the best values are unchanged.
func (s *OrderBookStore) Replace(snap domain.OrderBookSnapshot) domain.BestQuotePoint {
	point := domain.BestQuotePoint{
		Timestamp: s.now(),
		BestBid:   snap.BestBid(),
		BestAsk:   snap.BestAsk(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = snap
	s.history = append(s.history, point)
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		drop := len(s.history) - s.maxHistory
		s.history = append(s.history[:0], s.history[drop:]...)
	}
	return point
}

// Current returns the latest snapshot, or an empty book before the first
// arrival.
func (s *OrderBookStore) Current() domain.OrderBookSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// BestQuote returns the best bid and ask of the current snapshot.
func (s *OrderBookStore) BestQuote() (bestBid, bestAsk float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.BestBid(), s.current.BestAsk()
}

// History returns a copy of the derived best-quote series in arrival order.
func (s *OrderBookStore) History() []domain.BestQuotePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return nil
	}
	out := make([]domain.BestQuotePoint, len(s.history))
	copy(out, s.history)
	return out
}
