package domain

import "errors"

var (
	ErrInvalidOrder   = errors.New("invalid order parameters")
	ErrServerRejected = errors.New("order rejected by server")
	ErrDecodeFailure  = errors.New("malformed server response")
	ErrStreamClosed   = errors.New("stream closed")
)

// OrderErrorKind classifies an order submission failure.
type OrderErrorKind string

const (
	// Validation rejections, surfaced before any network call.
	OrderErrInvalidVolume   OrderErrorKind = "InvalidVolume"
	OrderErrInvalidPrice    OrderErrorKind = "InvalidPrice"
	OrderErrInvalidSide     OrderErrorKind = "InvalidSide"
	OrderErrInvalidCurrency OrderErrorKind = "InvalidCurrency"

	// Submission failures. No automatic retry; the caller decides.
	OrderErrNetworkFailure OrderErrorKind = "NetworkFailure"
	OrderErrServerRejected OrderErrorKind = "ServerRejected"
	OrderErrDecodeFailure  OrderErrorKind = "DecodeFailure"
)

// OrderError is the error type returned by order submission.
type OrderError struct {
	Kind OrderErrorKind
	Err  error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *OrderError) Unwrap() error { return e.Err }

// OrderErrorKindOf extracts the kind from an order submission error, or ""
// when err is not an OrderError.
func OrderErrorKindOf(err error) OrderErrorKind {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
