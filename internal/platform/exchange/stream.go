// Package exchange implements the wire protocol of the trading backend: the
// three streaming feed endpoints and the order submission endpoint.
package exchange

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

const (
	// maxEventSize bounds a single streamed event line.
	maxEventSize = 1 << 20
)

// StreamClient consumes a streaming endpoint as one long-lived HTTP GET
// delivering newline-delimited JSON events. SSE framing ("data:" prefixed
// lines) is tolerated, since the reference backend serves text/event-stream.
//
// Open performs a single connection attempt; reconnect policy belongs to the
// feed layer.
type StreamClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStreamClient creates a StreamClient for the given API root, e.g.
// "http://localhost:8080". The underlying HTTP client has no overall timeout;
// the streams are expected to stay open indefinitely.
func NewStreamClient(baseURL string) *StreamClient {
	return &StreamClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Open connects to the named stream and invokes deliver for every event line
// until the connection drops or ctx is cancelled. Empty lines are skipped.
// A dropped connection is reported as an error wrapping
// domain.ErrStreamClosed.
func (c *StreamClient) Open(ctx context.Context, stream string, deliver func(payload []byte)) error {
	url := c.baseURL + "/api/" + stream

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("exchange: open %s: %w", stream, err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("exchange: open %s: %w", stream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("exchange: open %s: unexpected status %d", stream, resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		line = bytes.TrimSpace(bytes.TrimPrefix(line, []byte("data:")))
		if len(line) == 0 {
			continue
		}
		// The scanner reuses its buffer between lines.
		deliver(append([]byte(nil), line...))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("exchange: stream %s: %w", stream, err)
	}
	return fmt.Errorf("exchange: stream %s: %w", stream, domain.ErrStreamClosed)
}
