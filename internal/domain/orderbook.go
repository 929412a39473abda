package domain

import "time"

// PriceLevel is a single price+volume entry in an order book.
type PriceLevel struct {
	Price  float64
	Volume float64
}

// OrderBookSnapshot is the entire book at one instant. Each new snapshot
// fully replaces the previous one; there are no incremental diff semantics.
type OrderBookSnapshot struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// BestBid returns the highest bid price, or 0 when the bid side is empty.
// The feed is not trusted to deliver bids ordered best-first, so the maximum
// is computed over the full set.
func (s OrderBookSnapshot) BestBid() float64 {
	var best float64
	for _, lvl := range s.Bids {
		if lvl.Price > best {
			best = lvl.Price
		}
	}
	return best
}

// BestAsk returns the lowest ask price, or 0 when the ask side is empty.
func (s OrderBookSnapshot) BestAsk() float64 {
	if len(s.Asks) == 0 {
		return 0
	}
	best := s.Asks[0].Price
	for _, lvl := range s.Asks[1:] {
		if lvl.Price < best {
			best = lvl.Price
		}
	}
	return best
}

// BestQuotePoint is one point of the derived best-bid/best-ask time series,
// appended once per snapshot received.
type BestQuotePoint struct {
	Timestamp time.Time
	BestBid   float64
	BestAsk   float64
}
