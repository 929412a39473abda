package domain

// SessionStats summarizes the price ticks seen for one currency since the
// client started.
type SessionStats struct {
	Currency string
	High     float64
	Low      float64
	Last     float64
	Ticks    int64
}
