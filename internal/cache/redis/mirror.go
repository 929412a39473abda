package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

// QuoteMirror implements domain.QuoteMirror.
//
// Key schema:
//
//	tick:{currency}  - hash with fields "price", "change", "ts" (Unix ns)
//	book:current     - JSON-encoded latest snapshot
//	quotes:history   - list of JSON quote points, newest first, capped
//	quotes           - pub/sub channel carrying each quote point
type QuoteMirror struct {
	rdb        *redis.Client
	historyMax int64
}

// NewQuoteMirror creates a QuoteMirror retaining at most historyMax quote
// points. historyMax <= 0 falls back to 10000.
func NewQuoteMirror(c *Client, historyMax int64) *QuoteMirror {
	if historyMax <= 0 {
		historyMax = 10000
	}
	return &QuoteMirror{rdb: c.Underlying(), historyMax: historyMax}
}

func tickKey(currency string) string { return "tick:" + currency }

const (
	bookKey         = "book:current"
	quoteHistoryKey = "quotes:history"
	quoteChannel    = "quotes"
)

// SetTick stores the latest tick for its currency.
func (m *QuoteMirror) SetTick(ctx context.Context, tick domain.PriceTick) error {
	fields := map[string]interface{}{
		"price":  strconv.FormatFloat(tick.Price, 'f', -1, 64),
		"change": strconv.FormatFloat(tick.Change, 'f', -1, 64),
		"ts":     strconv.FormatInt(tick.Timestamp.UnixNano(), 10),
	}
	if err := m.rdb.HSet(ctx, tickKey(tick.Currency), fields).Err(); err != nil {
		return fmt.Errorf("redis: set tick %s: %w", tick.Currency, err)
	}
	return nil
}

// SetBook replaces the mirrored book snapshot.
func (m *QuoteMirror) SetBook(ctx context.Context, snap domain.OrderBookSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("redis: marshal book: %w", err)
	}
	if err := m.rdb.Set(ctx, bookKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis: set book: %w", err)
	}
	return nil
}

// AppendQuote pushes one quote point onto the capped history list and
// publishes it on the quote channel.
func (m *QuoteMirror) AppendQuote(ctx context.Context, point domain.BestQuotePoint) error {
	payload, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("redis: marshal quote: %w", err)
	}

	pipe := m.rdb.TxPipeline()
	pipe.LPush(ctx, quoteHistoryKey, payload)
	pipe.LTrim(ctx, quoteHistoryKey, 0, m.historyMax-1)
	pipe.Publish(ctx, quoteChannel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: append quote: %w", err)
	}
	return nil
}

// QuoteHistory returns up to n mirrored quote points, newest first.
func (m *QuoteMirror) QuoteHistory(ctx context.Context, n int64) ([]domain.BestQuotePoint, error) {
	if n <= 0 {
		n = m.historyMax
	}
	raw, err := m.rdb.LRange(ctx, quoteHistoryKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: quote history: %w", err)
	}

	points := make([]domain.BestQuotePoint, 0, len(raw))
	for _, r := range raw {
		var p domain.BestQuotePoint
		if err := json.Unmarshal([]byte(r), &p); err != nil {
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

// Compile-time interface check.
var _ domain.QuoteMirror = (*QuoteMirror)(nil)
