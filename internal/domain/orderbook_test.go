package domain

import "testing"

func TestBestBidBestAsk(t *testing.T) {
	tests := []struct {
		name    string
		snap    OrderBookSnapshot
		wantBid float64
		wantAsk float64
	}{
		{
			name:    "empty book",
			snap:    OrderBookSnapshot{},
			wantBid: 0,
			wantAsk: 0,
		},
		{
			name: "ordered sides",
			snap: OrderBookSnapshot{
				Bids: []PriceLevel{{Price: 100, Volume: 5}, {Price: 98, Volume: 3}},
				Asks: []PriceLevel{{Price: 101, Volume: 4}, {Price: 103, Volume: 1}},
			},
			wantBid: 100,
			wantAsk: 101,
		},
		{
			name: "unordered sides are not trusted",
			snap: OrderBookSnapshot{
				Bids: []PriceLevel{{Price: 98, Volume: 3}, {Price: 100, Volume: 5}, {Price: 99, Volume: 1}},
				Asks: []PriceLevel{{Price: 103, Volume: 1}, {Price: 101, Volume: 4}, {Price: 102, Volume: 2}},
			},
			wantBid: 100,
			wantAsk: 101,
		},
		{
			name: "empty bids only",
			snap: OrderBookSnapshot{
				Asks: []PriceLevel{{Price: 55, Volume: 1}},
			},
			wantBid: 0,
			wantAsk: 55,
		},
		{
			name: "empty asks only",
			snap: OrderBookSnapshot{
				Bids: []PriceLevel{{Price: 42, Volume: 1}},
			},
			wantBid: 42,
			wantAsk: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.BestBid(); got != tt.wantBid {
				t.Errorf("BestBid() = %v, want %v", got, tt.wantBid)
			}
			if got := tt.snap.BestAsk(); got != tt.wantAsk {
				t.Errorf("BestAsk() = %v, want %v", got, tt.wantAsk)
			}
		})
	}
}

func TestNotificationKind(t *testing.T) {
	tests := []struct {
		change float64
		want   NotificationKind
	}{
		{9999, KindLargeTrade},
		{9998.9, KindPriceMove},
		{9999.1, KindPriceMove},
		{0, KindPriceMove},
		{-7.2, KindPriceMove},
		{10000, KindPriceMove},
	}

	for _, tt := range tests {
		n := Notification{Currency: "USD", Price: 80, ChangePercent: tt.change}
		if got := n.Kind(); got != tt.want {
			t.Errorf("Kind() for change %v = %v, want %v", tt.change, got, tt.want)
		}
	}
}
