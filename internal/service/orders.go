// Package service contains the order submission path between the view layer
// and the backend.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nesterrovv/exchange-client/internal/domain"
	"github.com/nesterrovv/exchange-client/internal/store"
)

// OrderPoster submits one order request to the backend and awaits exactly
// one response. The optional snapshot is the server's refreshed book.
type OrderPoster interface {
	PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderBookSnapshot, error)
}

// OrderGateway validates, submits, and resolves order requests. It performs
// no retry and no optimistic local book mutation; a refreshed book returned
// by the server is forwarded to the OrderBookStore so local state stays
// consistent with the server's view after a fill.
type OrderGateway struct {
	poster OrderPoster
	books  *store.OrderBookStore
	logger *slog.Logger
}

// NewOrderGateway creates a gateway submitting through the given poster.
func NewOrderGateway(poster OrderPoster, books *store.OrderBookStore, logger *slog.Logger) *OrderGateway {
	return &OrderGateway{
		poster: poster,
		books:  books,
		logger: logger.With(slog.String("component", "order_gateway")),
	}
}

// Submit validates the request, sends it, and resolves the result. Invalid
// requests are rejected synchronously without any network call. Submission
// failures surface as a domain.OrderError classified by kind; the caller
// decides whether to resubmit.
func (g *OrderGateway) Submit(ctx context.Context, req domain.OrderRequest) (domain.OrderAck, error) {
	if err := req.Validate(); err != nil {
		return domain.OrderAck{}, err
	}

	orderID := uuid.NewString()
	g.logger.InfoContext(ctx, "submitting order",
		slog.String("order_id", orderID),
		slog.String("side", string(req.Side)),
		slog.String("currency", req.Currency),
		slog.Float64("volume", req.Volume),
	)

	snap, err := g.poster.PlaceOrder(ctx, req)
	if err != nil {
		kind := domain.OrderErrNetworkFailure
		switch {
		case errors.Is(err, domain.ErrServerRejected):
			kind = domain.OrderErrServerRejected
		case errors.Is(err, domain.ErrDecodeFailure):
			kind = domain.OrderErrDecodeFailure
		}
		g.logger.WarnContext(ctx, "order submission failed",
			slog.String("order_id", orderID),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return domain.OrderAck{}, &domain.OrderError{Kind: kind, Err: err}
	}

	ack := domain.OrderAck{OrderID: orderID}
	if snap != nil {
		g.books.Replace(*snap)
		ack.Book = snap
	}
	return ack, nil
}
