// Package feed manages long-lived subscriptions to the backend's streaming
// endpoints. Each subscription owns the reconnect policy for its stream and
// delivers decoded events on a channel; malformed payloads are dropped, never
// surfaced as sequence errors.
package feed

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// reconnectBase is the first pause after a drop; subsequent pauses
	// double up to reconnectMax. A connection that stayed up at least
	// reconnectMax resets the backoff.
	reconnectBase = 2 * time.Second
	reconnectMax  = 60 * time.Second
)

// Streamer opens a single connection to a named stream and delivers raw
// event payloads until the connection drops or the context is cancelled. It
// is the transport collaborator; implementations live in platform packages.
type Streamer interface {
	Open(ctx context.Context, stream string, deliver func(payload []byte)) error
}

// Subscription is one long-lived subscription to one named stream. Events()
// yields a lazy, infinite sequence of decoded events; the sequence never
// terminates on a single bad message and survives reconnects (consumers must
// tolerate a timestamp gap after one). A Subscription is not restartable;
// open a fresh one instead.
type Subscription[T any] struct {
	stream   string
	streamer Streamer
	decode   func(raw []byte) (T, error)
	out      chan T
	logger   *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// Open creates a subscription to the named stream. Nothing is delivered
// until Run is called.
func Open[T any](stream string, streamer Streamer, decode func([]byte) (T, error), logger *slog.Logger) *Subscription[T] {
	return &Subscription[T]{
		stream:   stream,
		streamer: streamer,
		decode:   decode,
		out:      make(chan T, 64),
		logger:   logger.With(slog.String("component", "feed"), slog.String("stream", stream)),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of decoded events.
func (s *Subscription[T]) Events() <-chan T {
	return s.out
}

// Run connects and pumps events until ctx is cancelled or Close is called,
// reconnecting after every connection drop. It returns nil on Close and
// ctx.Err() on cancellation; connection errors are recovered locally and
// never returned.
func (s *Subscription[T]) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	delay := reconnectBase
	for {
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		started := time.Now()
		err := s.streamer.Open(ctx, s.stream, s.handle)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			if s.isClosed() {
				return nil
			}
			return ctx.Err()
		}
		if time.Since(started) >= reconnectMax {
			delay = reconnectBase
		}

		s.logger.Warn("stream disconnected, reconnecting",
			slog.Duration("backoff", delay),
			slog.String("error", err.Error()),
		)
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > reconnectMax {
			delay = reconnectMax
		}
	}
}

// Close stops further delivery. It is idempotent and safe to call at any
// point, including before the first event has arrived.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Subscription[T]) isClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// handle decodes one raw payload and forwards it. Empty or unparsable
// payloads are dropped silently; a debug log is the only trace.
func (s *Subscription[T]) handle(raw []byte) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return
	}
	event, err := s.decode(raw)
	if err != nil {
		s.logger.Debug("dropping malformed event", slog.String("error", err.Error()))
		return
	}
	select {
	case s.out <- event:
	case <-s.done:
	}
}
