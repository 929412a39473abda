package domain

// LargeTradeSentinel is the reserved changePercent value the backend uses to
// tag a large-trade notification instead of an actual percentage. The
// overloaded field is a wire convention inherited from the backend and must
// be matched by exact equality.
const LargeTradeSentinel = 9999

// NotificationKind distinguishes the two events the notification feed carries.
type NotificationKind int

const (
	KindPriceMove NotificationKind = iota
	KindLargeTrade
)

func (k NotificationKind) String() string {
	if k == KindLargeTrade {
		return "large_trade"
	}
	return "price_move"
}

// Notification is one event from the notification feed.
type Notification struct {
	Currency      string
	Price         float64
	ChangePercent float64
}

// Kind derives the notification kind from the changePercent sentinel.
func (n Notification) Kind() NotificationKind {
	if n.ChangePercent == LargeTradeSentinel {
		return KindLargeTrade
	}
	return KindPriceMove
}
