package exchange

import (
	"encoding/json"
	"time"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

// Stream names exposed by the backend. Each maps to one streaming endpoint
// under /api/.
const (
	StreamTicks         = "currency"
	StreamOrderBook     = "orderbook"
	StreamNotifications = "notification"
)

// TickMessage is one event on the price-tick stream.
type TickMessage struct {
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// ToDomain converts the wire tick to the domain representation.
func (m *TickMessage) ToDomain() domain.PriceTick {
	return domain.PriceTick{
		Currency:  m.Currency,
		Price:     m.Price,
		Change:    m.Change,
		Timestamp: time.UnixMilli(m.Timestamp),
	}
}

// LevelMessage is one price level inside a book snapshot.
type LevelMessage struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// BookMessage is one event on the order-book stream: the entire book at one
// instant.
type BookMessage struct {
	Bids []LevelMessage `json:"bids"`
	Asks []LevelMessage `json:"asks"`
}

// ToDomain converts the wire book to the domain snapshot.
func (m *BookMessage) ToDomain() domain.OrderBookSnapshot {
	snap := domain.OrderBookSnapshot{
		Bids: make([]domain.PriceLevel, 0, len(m.Bids)),
		Asks: make([]domain.PriceLevel, 0, len(m.Asks)),
	}
	for _, lvl := range m.Bids {
		snap.Bids = append(snap.Bids, domain.PriceLevel{Price: lvl.Price, Volume: lvl.Volume})
	}
	for _, lvl := range m.Asks {
		snap.Asks = append(snap.Asks, domain.PriceLevel{Price: lvl.Price, Volume: lvl.Volume})
	}
	return snap
}

// NotificationMessage is one event on the notification stream. The percentage
// field doubles as a large-trade tag through the reserved sentinel value; the
// domain side derives the kind.
type NotificationMessage struct {
	CurrentCurrency string  `json:"currentCurrency"`
	CurrentPrice    float64 `json:"currentPrice"`
	Percentage      float64 `json:"percentage"`
}

// ToDomain converts the wire notification to the domain representation.
func (m *NotificationMessage) ToDomain() domain.Notification {
	return domain.Notification{
		Currency:      m.CurrentCurrency,
		Price:         m.CurrentPrice,
		ChangePercent: m.Percentage,
	}
}

// orderRequestBody is the outbound order payload. UserPrice marshals as null
// when no limit price was supplied; the field is never coerced to zero.
type orderRequestBody struct {
	Side      string   `json:"side"`
	Currency  string   `json:"currency"`
	Volume    float64  `json:"volume"`
	UserPrice *float64 `json:"userPrice"`
}

// DecodeTick parses one raw payload from the price-tick stream.
func DecodeTick(raw []byte) (domain.PriceTick, error) {
	var msg TickMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return domain.PriceTick{}, err
	}
	return msg.ToDomain(), nil
}

// DecodeBook parses one raw payload from the order-book stream.
func DecodeBook(raw []byte) (domain.OrderBookSnapshot, error) {
	var msg BookMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return domain.OrderBookSnapshot{}, err
	}
	return msg.ToDomain(), nil
}

// DecodeNotification parses one raw payload from the notification stream.
func DecodeNotification(raw []byte) (domain.Notification, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return domain.Notification{}, err
	}
	return msg.ToDomain(), nil
}
