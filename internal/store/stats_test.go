package store

import (
	"testing"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

func TestStatsStore_Observe(t *testing.T) {
	s := NewStatsStore()

	if _, ok := s.StatsFor("USD"); ok {
		t.Fatal("StatsFor(USD) ok before any tick, want false")
	}

	for _, price := range []float64{80.0, 81.5, 79.2, 80.4} {
		s.Observe(domain.PriceTick{Currency: "USD", Price: price})
	}
	s.Observe(domain.PriceTick{Currency: "EUR", Price: 85.0})

	usd, ok := s.StatsFor("USD")
	if !ok {
		t.Fatal("StatsFor(USD) not found")
	}
	if usd.High != 81.5 || usd.Low != 79.2 || usd.Last != 80.4 || usd.Ticks != 4 {
		t.Errorf("USD stats = %+v, want high 81.5, low 79.2, last 80.4, ticks 4", usd)
	}

	eur, ok := s.StatsFor("EUR")
	if !ok || eur.High != 85.0 || eur.Low != 85.0 || eur.Ticks != 1 {
		t.Errorf("EUR stats = %+v, want single observation at 85.0", eur)
	}
}
