package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// pingPeriod sends pings to the peer at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 15 * time.Second
)

// WSClient consumes a streaming endpoint over WebSocket, for backends that
// expose the feeds as ws:// endpoints instead of newline-delimited HTTP
// streams. Each WebSocket text message carries one JSON event.
//
// Like StreamClient, Open performs a single connection attempt; reconnect
// policy belongs to the feed layer.
type WSClient struct {
	wsURL string
}

// NewWSClient creates a WSClient for the given WebSocket root, e.g.
// "ws://localhost:8080".
func NewWSClient(wsURL string) *WSClient {
	return &WSClient{wsURL: wsURL}
}

// Open dials the named stream and invokes deliver for every received message
// until the connection drops or ctx is cancelled.
func (c *WSClient) Open(ctx context.Context, stream string, deliver func(payload []byte)) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, _, err := dialer.DialContext(ctx, c.wsURL+"/api/"+stream, nil)
	if err != nil {
		return fmt.Errorf("exchange: dial %s: %w", stream, err)
	}

	done := make(chan struct{})
	defer close(done)

	// Closing the connection is the only way to unblock ReadMessage on
	// cancellation.
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		_ = conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go pingLoop(conn, done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("exchange: stream %s: %w (%v)", stream, domain.ErrStreamClosed, err)
		}
		deliver(message)
	}
}

// pingLoop sends periodic ping messages to keep the connection alive.
func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
