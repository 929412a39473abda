package alert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/nesterrovv/exchange-client/internal/domain"
	"github.com/nesterrovv/exchange-client/internal/notify"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSender struct {
	mu       sync.Mutex
	messages []string
	fail     bool
}

func (r *recordingSender) Send(ctx context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("sink down")
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *recordingSender) Name() string { return "recording" }

func newRouter(sender notify.Sender) *Router {
	notifier := notify.NewNotifier([]notify.Sender{sender}, nil, discardLogger())
	return NewRouter(notifier, discardLogger())
}

func TestRouterClassify(t *testing.T) {
	r := newRouter(&recordingSender{})

	tests := []struct {
		name         string
		note         domain.Notification
		wantSeverity Severity
		wantMessage  string
	}{
		{
			name:         "sentinel is a large trade",
			note:         domain.Notification{Currency: "USD", Price: 80.5, ChangePercent: 9999},
			wantSeverity: SeverityWarning,
			wantMessage:  "Large trade on USD — price: 80.5",
		},
		{
			name:         "ordinary move",
			note:         domain.Notification{Currency: "EUR", Price: 85.25, ChangePercent: 6.1},
			wantSeverity: SeverityInfo,
			wantMessage:  "EUR: price 85.25 (change: 6.1%)",
		},
		{
			name:         "negative move",
			note:         domain.Notification{Currency: "CNY", Price: 11.2, ChangePercent: -5.5},
			wantSeverity: SeverityInfo,
			wantMessage:  "CNY: price 11.2 (change: -5.5%)",
		},
		{
			name:         "just under the sentinel",
			note:         domain.Notification{Currency: "USD", Price: 80, ChangePercent: 9998.9},
			wantSeverity: SeverityInfo,
			wantMessage:  "USD: price 80 (change: 9998.9%)",
		},
		{
			name:         "just over the sentinel",
			note:         domain.Notification{Currency: "USD", Price: 80, ChangePercent: 9999.1},
			wantSeverity: SeverityInfo,
			wantMessage:  "USD: price 80 (change: 9999.1%)",
		},
		{
			name:         "zero change",
			note:         domain.Notification{Currency: "USD", Price: 80, ChangePercent: 0},
			wantSeverity: SeverityInfo,
			wantMessage:  "USD: price 80 (change: 0%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Classify(tt.note)
			if a.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", a.Severity, tt.wantSeverity)
			}
			if a.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", a.Message, tt.wantMessage)
			}
		})
	}
}

func TestRouterRouteExactlyOnce(t *testing.T) {
	sender := &recordingSender{}
	r := newRouter(sender)

	r.Route(context.Background(), domain.Notification{Currency: "USD", Price: 80, ChangePercent: 9999})
	r.Route(context.Background(), domain.Notification{Currency: "USD", Price: 80, ChangePercent: 9999})

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.messages) != 2 {
		t.Errorf("sink received %d messages, want 2 (no dedup, one per notification)", len(sender.messages))
	}
}

func TestRouterRouteSwallowsSinkFailures(t *testing.T) {
	r := newRouter(&recordingSender{fail: true})

	// Must not panic or propagate; routing is fire-and-forget.
	r.Route(context.Background(), domain.Notification{Currency: "USD", Price: 80, ChangePercent: 1})
}
