// Package alert classifies notification feed events and routes them to the
// configured display sinks.
package alert

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/nesterrovv/exchange-client/internal/domain"
	"github.com/nesterrovv/exchange-client/internal/notify"
)

// Severity tags a classified alert.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Alert is a classified, display-ready notification.
type Alert struct {
	Severity Severity
	Message  string
}

// Router classifies notifications and forwards them to the display sinks.
// It holds no state and performs no deduplication or rate limiting: every
// notification received is classified and routed exactly once.
type Router struct {
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewRouter creates a Router that dispatches through the given notifier.
func NewRouter(notifier *notify.Notifier, logger *slog.Logger) *Router {
	return &Router{
		notifier: notifier,
		logger:   logger.With(slog.String("component", "alert_router")),
	}
}

// Classify maps a notification to a severity and display message. A
// changePercent exactly equal to the large-trade sentinel yields Warning;
// every other value, including zero, negative, and values just under or over
// the sentinel, yields Info.
func (r *Router) Classify(n domain.Notification) Alert {
	if n.Kind() == domain.KindLargeTrade {
		return Alert{
			Severity: SeverityWarning,
			Message:  "Large trade on " + n.Currency + " — price: " + formatNum(n.Price),
		}
	}
	return Alert{
		Severity: SeverityInfo,
		Message:  n.Currency + ": price " + formatNum(n.Price) + " (change: " + formatNum(n.ChangePercent) + "%)",
	}
}

// Route classifies the notification and dispatches it fire-and-forget. Sink
// failures are logged, never propagated.
func (r *Router) Route(ctx context.Context, n domain.Notification) {
	a := r.Classify(n)
	if err := r.notifier.Notify(ctx, string(a.Severity), n.Kind().String(), a.Message); err != nil {
		r.logger.WarnContext(ctx, "alert dispatch failed",
			slog.String("severity", string(a.Severity)),
			slog.String("error", err.Error()),
		)
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
