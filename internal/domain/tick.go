package domain

import "time"

// PriceTick is a single price observation for one currency. Ticks are
// immutable once received; stores append them in arrival order and never
// mutate or delete them.
type PriceTick struct {
	Currency  string
	Price     float64
	Change    float64 // signed percent vs. the previous tick
	Timestamp time.Time
}
