package store

import (
	"sync"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

// StatsStore accumulates per-currency session statistics from the price feed.
type StatsStore struct {
	mu    sync.RWMutex
	stats map[string]domain.SessionStats
}

// NewStatsStore creates an empty stats accumulator.
func NewStatsStore() *StatsStore {
	return &StatsStore{stats: make(map[string]domain.SessionStats)}
}

// Observe folds one tick into the running statistics for its currency.
func (s *StatsStore) Observe(tick domain.PriceTick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[tick.Currency]
	if !ok {
		st = domain.SessionStats{
			Currency: tick.Currency,
			High:     tick.Price,
			Low:      tick.Price,
		}
	}
	if tick.Price > st.High {
		st.High = tick.Price
	}
	if tick.Price < st.Low {
		st.Low = tick.Price
	}
	st.Last = tick.Price
	st.Ticks++
	s.stats[tick.Currency] = st
}

// StatsFor returns the session statistics for one currency. ok is false when
// no tick for that currency has been observed yet.
func (s *StatsStore) StatsFor(currency string) (stats domain.SessionStats, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok = s.stats[currency]
	return stats, ok
}
