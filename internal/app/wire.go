package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nesterrovv/exchange-client/internal/alert"
	"github.com/nesterrovv/exchange-client/internal/cache/redis"
	"github.com/nesterrovv/exchange-client/internal/client"
	"github.com/nesterrovv/exchange-client/internal/config"
	"github.com/nesterrovv/exchange-client/internal/domain"
	"github.com/nesterrovv/exchange-client/internal/feed"
	"github.com/nesterrovv/exchange-client/internal/notify"
	"github.com/nesterrovv/exchange-client/internal/platform/exchange"
)

// Dependencies bundles everything the running application needs. It is
// constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Client *client.MarketClient
}

// Wire constructs the transport, optional mirror, alert sinks, and the
// MarketClient from the given configuration.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Transport ---
	var streamer feed.Streamer
	switch cfg.Exchange.Transport {
	case "ws":
		streamer = exchange.NewWSClient(cfg.Exchange.WsURL)
	default:
		streamer = exchange.NewStreamClient(cfg.Exchange.BaseURL)
	}
	poster := exchange.NewRESTClient(cfg.Exchange.BaseURL)

	// --- Optional Redis mirror ---
	var mirror domain.QuoteMirror
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		mirror = redis.NewQuoteMirror(redisClient, int64(cfg.Redis.HistoryMax))
	}

	// --- Alert sinks ---
	senders := []notify.Sender{notify.NewLogSender(logger)}
	if cfg.Notify.TelegramEnabled {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordEnabled {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	notifier := notify.NewNotifier(senders, cfg.Notify.Severities, logger)
	router := alert.NewRouter(notifier, logger)

	// --- Market client ---
	mc := client.New(streamer, poster, router, client.Options{
		PriceHistoryMax: cfg.Retention.PriceHistoryMax,
		QuoteHistoryMax: cfg.Retention.QuoteHistoryMax,
		Mirror:          mirror,
	}, logger)
	closers = append(closers, mc.Close)

	return &Dependencies{Client: mc}, cleanup, nil
}
