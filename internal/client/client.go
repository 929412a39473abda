// Package client provides the MarketClient composition root: one
// subscription per feed, the stores they fill, the alert router, and the
// order gateway, exposed to the view layer as consolidated read-only state
// plus SubmitOrder.
package client

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nesterrovv/exchange-client/internal/alert"
	"github.com/nesterrovv/exchange-client/internal/domain"
	"github.com/nesterrovv/exchange-client/internal/feed"
	"github.com/nesterrovv/exchange-client/internal/platform/exchange"
	"github.com/nesterrovv/exchange-client/internal/service"
	"github.com/nesterrovv/exchange-client/internal/store"
)

// Options tunes the in-memory retention caps. Zero values disable trimming.
type Options struct {
	PriceHistoryMax int
	QuoteHistoryMax int

	// Mirror, when set, receives every ingested tick, installed snapshot,
	// and derived quote point. Mirror failures are logged and never stop
	// ingestion.
	Mirror domain.QuoteMirror
}

// MarketClient owns the three feed subscriptions and all derived state. The
// three feeds run concurrently but every store mutation happens on the single
// dispatch goroutine, so feed ordering is reconciled without locks on the
// write path. SubmitOrder runs on the caller's goroutine and does not block
// ingestion.
type MarketClient struct {
	ticks *feed.Subscription[domain.PriceTick]
	books *feed.Subscription[domain.OrderBookSnapshot]
	notes *feed.Subscription[domain.Notification]

	prices    *store.PriceSeriesStore
	bookStore *store.OrderBookStore
	stats     *store.StatsStore
	router    *alert.Router
	gateway   *service.OrderGateway
	mirror    domain.QuoteMirror
	logger    *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// New wires a MarketClient over the given transport and order poster. The
// client is inert until Run is called.
func New(streamer feed.Streamer, poster service.OrderPoster, router *alert.Router, opts Options, logger *slog.Logger) *MarketClient {
	prices := store.NewPriceSeriesStore(opts.PriceHistoryMax)
	books := store.NewOrderBookStore(opts.QuoteHistoryMax)

	return &MarketClient{
		ticks: feed.Open(exchange.StreamTicks, streamer, exchange.DecodeTick, logger),
		books: feed.Open(exchange.StreamOrderBook, streamer, exchange.DecodeBook, logger),
		notes: feed.Open(exchange.StreamNotifications, streamer, exchange.DecodeNotification, logger),

		prices:    prices,
		bookStore: books,
		stats:     store.NewStatsStore(),
		router:    router,
		gateway:   service.NewOrderGateway(poster, books, logger),
		mirror:    opts.Mirror,
		logger:    logger.With(slog.String("component", "market_client")),
		done:      make(chan struct{}),
	}
}

// Run starts the three feed pumps and the dispatch loop and blocks until ctx
// is cancelled or Close is called.
func (c *MarketClient) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return c.ticks.Run(ctx) })
	g.Go(func() error { return c.books.Run(ctx) })
	g.Go(func() error { return c.notes.Run(ctx) })
	g.Go(func() error { return c.dispatch(ctx) })

	return g.Wait()
}

// Close stops all three subscriptions. It is idempotent and safe during
// teardown even if no event has arrived yet.
func (c *MarketClient) Close() {
	c.closeOnce.Do(func() {
		c.ticks.Close()
		c.books.Close()
		c.notes.Close()
		close(c.done)
	})
}

// dispatch multiplexes the three feeds onto one goroutine. Ordering between
// feeds is whatever the select picks; nothing here assumes any.
func (c *MarketClient) dispatch(ctx context.Context) error {
	for {
		select {
		case <-c.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case tick := <-c.ticks.Events():
			c.handleTick(ctx, tick)
		case snap := <-c.books.Events():
			c.handleBook(ctx, snap)
		case note := <-c.notes.Events():
			c.router.Route(ctx, note)
		}
	}
}

func (c *MarketClient) handleTick(ctx context.Context, tick domain.PriceTick) {
	c.prices.Ingest(tick)
	c.stats.Observe(tick)

	if c.mirror != nil {
		if err := c.mirror.SetTick(ctx, tick); err != nil {
			c.logger.WarnContext(ctx, "mirror tick failed",
				slog.String("currency", tick.Currency),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (c *MarketClient) handleBook(ctx context.Context, snap domain.OrderBookSnapshot) {
	point := c.bookStore.Replace(snap)

	if c.mirror != nil {
		if err := c.mirror.SetBook(ctx, snap); err != nil {
			c.logger.WarnContext(ctx, "mirror book failed", slog.String("error", err.Error()))
		}
		if err := c.mirror.AppendQuote(ctx, point); err != nil {
			c.logger.WarnContext(ctx, "mirror quote failed", slog.String("error", err.Error()))
		}
	}
}

// PricesFor returns the tick history for one currency in arrival order.
func (c *MarketClient) PricesFor(currency string) []domain.PriceTick {
	return c.prices.ViewFor(currency)
}

// CurrentBook returns the latest order-book snapshot.
func (c *MarketClient) CurrentBook() domain.OrderBookSnapshot {
	return c.bookStore.Current()
}

// BestQuoteHistory returns the derived best-bid/best-ask series.
func (c *MarketClient) BestQuoteHistory() []domain.BestQuotePoint {
	return c.bookStore.History()
}

// StatsFor returns the per-currency session statistics.
func (c *MarketClient) StatsFor(currency string) (domain.SessionStats, bool) {
	return c.stats.StatsFor(currency)
}

// SubmitOrder validates and submits one order. Feed ingestion continues
// unaffected while the round trip is in flight; in-flight submissions are
// not cancellable once sent.
func (c *MarketClient) SubmitOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderAck, error) {
	return c.gateway.Submit(ctx, req)
}
