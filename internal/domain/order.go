package domain

import "math"

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderRequest is a user-initiated order. LimitPrice is optional: nil means
// "no limit price supplied", which is distinct from zero and must be encoded
// as null on the wire.
type OrderRequest struct {
	Side       OrderSide
	Currency   string
	Volume     float64
	LimitPrice *float64
}

// Validate checks the request before any network call. Volume must be a
// positive finite number; LimitPrice, when present, must be a positive
// finite number.
func (r OrderRequest) Validate() error {
	if r.Side != OrderSideBuy && r.Side != OrderSideSell {
		return &OrderError{Kind: OrderErrInvalidSide, Err: ErrInvalidOrder}
	}
	if r.Currency == "" {
		return &OrderError{Kind: OrderErrInvalidCurrency, Err: ErrInvalidOrder}
	}
	if r.Volume <= 0 || math.IsInf(r.Volume, 0) || math.IsNaN(r.Volume) {
		return &OrderError{Kind: OrderErrInvalidVolume, Err: ErrInvalidOrder}
	}
	if r.LimitPrice != nil {
		p := *r.LimitPrice
		if p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
			return &OrderError{Kind: OrderErrInvalidPrice, Err: ErrInvalidOrder}
		}
	}
	return nil
}

// OrderAck is the resolved result of a successful submission. Book is the
// refreshed order-book snapshot when the server returned one, nil otherwise.
type OrderAck struct {
	OrderID string
	Book    *OrderBookSnapshot
}
