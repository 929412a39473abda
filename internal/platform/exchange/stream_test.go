package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

func TestStreamClient_DeliversNewlineDelimitedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/currency" {
			t.Errorf("path = %s, want /api/currency", r.URL.Path)
		}
		fmt.Fprint(w, `{"currency":"USD","price":80.5,"change":1.2,"timestamp":1700000000000}`+"\n")
		fmt.Fprint(w, "\n") // blank keep-alive line
		fmt.Fprint(w, `{"currency":"EUR","price":85.0,"change":-0.4,"timestamp":1700000001000}`+"\n")
	}))
	defer server.Close()

	client := NewStreamClient(server.URL)

	var got [][]byte
	err := client.Open(context.Background(), StreamTicks, func(p []byte) {
		got = append(got, p)
	})
	if !errors.Is(err, domain.ErrStreamClosed) {
		t.Errorf("Open() = %v, want wrapped ErrStreamClosed on server EOF", err)
	}
	if len(got) != 2 {
		t.Fatalf("delivered %d payloads, want 2", len(got))
	}

	tick, decErr := DecodeTick(got[0])
	if decErr != nil {
		t.Fatalf("DecodeTick: %v", decErr)
	}
	if tick.Currency != "USD" || tick.Price != 80.5 {
		t.Errorf("tick = %+v, want USD @ 80.5", tick)
	}
	if tick.Timestamp.UnixMilli() != 1700000000000 {
		t.Errorf("timestamp = %v, want epoch ms 1700000000000", tick.Timestamp)
	}
}

func TestStreamClient_StripsSSEFraming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"bids\":[{\"price\":100,\"volume\":5}],\"asks\":[]}\n\n")
	}))
	defer server.Close()

	client := NewStreamClient(server.URL)

	var got [][]byte
	_ = client.Open(context.Background(), StreamOrderBook, func(p []byte) {
		got = append(got, p)
	})
	if len(got) != 1 {
		t.Fatalf("delivered %d payloads, want 1", len(got))
	}

	snap, err := DecodeBook(got[0])
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}
	if snap.BestBid() != 100 {
		t.Errorf("BestBid() = %v, want 100", snap.BestBid())
	}
}

func TestStreamClient_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewStreamClient(server.URL)
	err := client.Open(context.Background(), StreamTicks, func([]byte) {})
	if err == nil {
		t.Fatal("Open() = nil, want error on status 500")
	}
}

func TestStreamClient_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	client := NewStreamClient(server.URL)
	err := client.Open(ctx, StreamTicks, func([]byte) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Open() = %v, want context.Canceled", err)
	}
}
