package domain

import "context"

// QuoteMirror publishes derived state to an external store so consumers other
// than the view layer (alerting pipelines, automated traders) can read it
// without holding a reference to the client. Implementations own retention.
type QuoteMirror interface {
	SetTick(ctx context.Context, tick PriceTick) error
	SetBook(ctx context.Context, snap OrderBookSnapshot) error
	AppendQuote(ctx context.Context, point BestQuotePoint) error
}
