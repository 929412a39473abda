// Package notify delivers alerts to display sinks. The engine itself only
// produces classified alerts; where they end up (terminal, Telegram, a
// dashboard push channel) is a sink concern.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender is one display sink.
type Sender interface {
	// Send delivers an alert with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name identifies the sink, e.g. "telegram".
	Name() string
}

// Notifier fans an alert out to every registered sender. A severity filter
// narrows delivery: when severities were configured, only alerts whose
// severity is in the set are forwarded.
type Notifier struct {
	senders    []Sender
	severities map[string]bool
	logger     *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders. An empty
// severities slice allows everything.
func NewNotifier(senders []Sender, severities []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(severities))
	for _, s := range severities {
		allowed[strings.TrimSpace(s)] = true
	}
	return &Notifier{
		senders:    senders,
		severities: allowed,
		logger:     logger.With(slog.String("component", "notifier")),
	}
}

// Notify delivers the alert to every sender, subject to the severity filter.
// A failing sender does not prevent delivery to the rest; failures are
// combined into the returned error.
func (n *Notifier) Notify(ctx context.Context, severity, title, message string) error {
	if len(n.severities) > 0 && !n.severities[severity] {
		return nil
	}
	if len(n.senders) == 0 {
		return nil
	}

	var failed []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", s.Name(), err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(failed), strings.Join(failed, "; "))
	}
	return nil
}
