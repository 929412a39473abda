package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

func wsServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
}

func httpToWS(url string) string {
	return strings.Replace(url, "http://", "ws://", 1)
}

func TestWSClient_DeliversMessages(t *testing.T) {
	server := wsServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"currency":"USD","price":80,"change":0,"timestamp":1700000000000}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"currency":"EUR","price":85,"change":0,"timestamp":1700000001000}`))
		time.Sleep(100 * time.Millisecond)
	})
	defer server.Close()

	client := NewWSClient(httpToWS(server.URL))

	var got [][]byte
	err := client.Open(context.Background(), StreamTicks, func(p []byte) {
		got = append(got, p)
	})
	if !errors.Is(err, domain.ErrStreamClosed) {
		t.Errorf("Open() = %v, want wrapped ErrStreamClosed when peer closes", err)
	}
	if len(got) != 2 {
		t.Fatalf("delivered %d messages, want 2", len(got))
	}
	tick, decErr := DecodeTick(got[0])
	if decErr != nil || tick.Currency != "USD" {
		t.Errorf("first message = %+v (err %v), want USD tick", tick, decErr)
	}
}

func TestWSClient_CancelledContext(t *testing.T) {
	server := wsServer(t, func(conn *websocket.Conn) {
		// Hold the connection open; read so close frames are processed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	client := NewWSClient(httpToWS(server.URL))
	err := client.Open(ctx, StreamTicks, func([]byte) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Open() = %v, want context.Canceled", err)
	}
}

func TestWSClient_DialFailure(t *testing.T) {
	client := NewWSClient("ws://127.0.0.1:1")
	err := client.Open(context.Background(), StreamTicks, func([]byte) {})
	if err == nil {
		t.Fatal("Open() = nil, want dial error")
	}
}
