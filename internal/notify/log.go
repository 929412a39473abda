package notify

import (
	"context"
	"log/slog"
)

// LogSender writes alerts to the structured log. It is the default display
// sink when no external channel is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender writing through the given logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With(slog.String("component", "alerts"))}
}

// Send logs the alert at info level.
func (l *LogSender) Send(ctx context.Context, title, message string) error {
	l.logger.InfoContext(ctx, message, slog.String("alert", title))
	return nil
}

// Name returns the sender identifier.
func (l *LogSender) Name() string {
	return "log"
}
