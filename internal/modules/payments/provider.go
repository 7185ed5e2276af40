package payments

import (
	"context"
	"net/http"
)

type CreateOrderRequest struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type CreateOrderResponse struct {
	OrderRef    string // gateway order id, configures the widget
	AmountPaise int64
	Currency    string
}

// PaymentResult is the gateway completion callback payload: consumed once by
// verification, never stored as is.
type PaymentResult struct {
	OrderRef   string
	PaymentRef string
	Signature  string
}

type WebhookEvent struct {
	EventID string
	Type    string // payment.captured|payment.failed

	OrderRef    string
	PaymentRef  string
	AmountPaise int64
	Currency    string
}

type Provider interface {
	Name() string

	// KeyID is the public key the widget is configured with.
	KeyID() string

	CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error)

	// VerifySignature checks the checkout callback signature over the
	// order/payment pair.
	VerifySignature(res PaymentResult) bool

	// Webhook: verify signature + parse event
	VerifyAndParseWebhook(headers http.Header, body []byte) (WebhookEvent, error)
}
