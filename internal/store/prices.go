// Package store holds the in-memory state accumulated from the three market
// data feeds. All mutation happens on the client's dispatch goroutine; the
// read-side locking exists so the view layer can call the accessors from any
// goroutine.
package store

import (
	"sync"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

// PriceSeriesStore accumulates raw price ticks in arrival order. Arrival
// order is authoritative: a later-arriving tick with an earlier timestamp is
// kept where it arrived, and duplicate timestamps for the same currency are
// both retained.
type PriceSeriesStore struct {
	mu      sync.RWMutex
	ticks   []domain.PriceTick
	maxSize int
}

// NewPriceSeriesStore creates a store that retains at most maxSize ticks,
// dropping the oldest first. maxSize <= 0 disables trimming.
func NewPriceSeriesStore(maxSize int) *PriceSeriesStore {
	return &PriceSeriesStore{maxSize: maxSize}
}

// Ingest appends one tick to the history. No dedup is performed.
func (s *PriceSeriesStore) Ingest(tick domain.PriceTick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks = append(s.ticks, tick)
	if s.maxSize > 0 && len(s.ticks) > s.maxSize {
		drop := len(s.ticks) - s.maxSize
		s.ticks = append(s.ticks[:0], s.ticks[drop:]...)
	}
}

// ViewFor returns, in arrival order, exactly the ticks whose currency equals
// the argument. The returned slice is a copy and safe to mutate.
func (s *PriceSeriesStore) ViewFor(currency string) []domain.PriceTick {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.PriceTick
	for _, t := range s.ticks {
		if t.Currency == currency {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of retained ticks across all currencies.
func (s *PriceSeriesStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ticks)
}
