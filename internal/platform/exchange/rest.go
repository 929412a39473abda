package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nesterrovv/exchange-client/internal/domain"
)

// maxResponseSize bounds the order response body.
const maxResponseSize = 1 << 20

// RESTClient submits orders to the backend's request endpoint.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient creates a RESTClient for the given API root.
func NewRESTClient(baseURL string) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PlaceOrder serializes the request, posts it, and awaits exactly one
// response. A 2xx response may carry a refreshed order-book snapshot, which
// is returned to the caller; an empty body means success without one.
// Non-2xx statuses are reported wrapping domain.ErrServerRejected and
// unparsable bodies wrapping domain.ErrDecodeFailure, so the service layer
// can classify the failure. No retry is performed here.
func (c *RESTClient) PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderBookSnapshot, error) {
	payload := orderRequestBody{
		Side:      string(order.Side),
		Currency:  order.Currency,
		Volume:    order.Volume,
		UserPrice: order.LimitPrice,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("exchange: marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("exchange: place order: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange: place order: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("exchange: read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("exchange: place order: status %d: %w", resp.StatusCode, domain.ErrServerRejected)
	}

	respBody = bytes.TrimSpace(respBody)
	if len(respBody) == 0 {
		return nil, nil
	}

	var book BookMessage
	if err := json.Unmarshal(respBody, &book); err != nil {
		return nil, fmt.Errorf("exchange: decode order response: %v: %w", err, domain.ErrDecodeFailure)
	}

	snap := book.ToDomain()
	return &snap, nil
}
