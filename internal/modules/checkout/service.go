package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Divyanshi070700/Undiyu-2/internal/config"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/cart"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/payments"
	"github.com/Divyanshi070700/Undiyu-2/internal/storage"
)

type OrderStore interface {
	Create(ctx context.Context, in orders.CreateParams) (orders.Order, error)
	GetByProviderRef(ctx context.Context, providerRef string) (orders.Order, error)
	MarkPaid(ctx context.Context, providerRef, paymentRef string) error
	MarkFailed(ctx context.Context, providerRef string) error
}

type PaymentRecorder interface {
	Record(ctx context.Context, p payments.Payment) error
}

// Notifier reports a paid order to the store mailbox. Failures are logged,
// never surfaced to the shopper.
type Notifier interface {
	OrderPaid(ctx context.Context, o orders.Order, paymentRef string) error
}

// WidgetConfig is everything the gateway widget needs, echoed to the client
// after order creation.
type WidgetConfig struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// Result is the terminal outcome of one gateway callback. Message is shown to
// the shopper; on failure it carries the gateway payment id for support.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id,omitempty"`
}

// Service drives the checkout protocol: create the gateway order, hand the
// widget config to the client, verify the completion callback, then settle
// cart and order state.
type Service struct {
	carts    *cart.Store
	provider payments.Provider
	orders   OrderStore
	payRepo  PaymentRecorder
	receipts storage.Storage
	notify   Notifier
	branding config.RazorpayConfig
	logger   *slog.Logger

	flows *flows
}

func NewService(
	carts *cart.Store,
	provider payments.Provider,
	orderStore OrderStore,
	payRepo PaymentRecorder,
	receipts storage.Storage,
	notify Notifier,
	branding config.RazorpayConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		carts:    carts,
		provider: provider,
		orders:   orderStore,
		payRepo:  payRepo,
		receipts: receipts,
		notify:   notify,
		branding: branding,
		logger:   logger,
		flows:    newFlows(),
	}
}

func (s *Service) State(sessionID string) State { return s.flows.state(sessionID) }

// Start begins a checkout for the session's cart. clientAmount is the amount
// the client computed, in minor units; zero skips the cross-check. The
// server-side snapshot is authoritative.
func (s *Service) Start(ctx context.Context, sessionID string, clientAmount int64) (WidgetConfig, error) {
	snap := s.carts.Snapshot(sessionID)
	amount := snap.TotalMinorUnits()
	if amount <= 0 {
		return WidgetConfig{}, ErrEmptyCart
	}
	if clientAmount != 0 && clientAmount != amount {
		return WidgetConfig{}, fmt.Errorf("%w: client sent %d, cart totals %d", ErrOrderCreateFailed, clientAmount, amount)
	}

	if !s.flows.beginStart(sessionID) {
		return WidgetConfig{}, ErrFlowBusy
	}

	summary := snap.Summary()
	res, err := s.provider.CreateOrder(ctx, payments.CreateOrderRequest{
		AmountPaise: amount,
		Currency:    "INR",
		Notes:       map[string]string{"items": fmt.Sprintf("%d", snap.TotalItems())},
	})
	if err != nil {
		s.flows.resolve(sessionID, StateFailed)
		s.logger.ErrorContext(ctx, "gateway order create failed", "err", err)
		return WidgetConfig{}, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	if _, err := s.orders.Create(ctx, orders.CreateParams{
		ProviderRef: res.OrderRef,
		AmountPaise: res.AmountPaise,
		Currency:    res.Currency,
		Cart:        summary,
	}); err != nil {
		s.flows.resolve(sessionID, StateFailed)
		s.logger.ErrorContext(ctx, "order persist failed", "provider_ref", res.OrderRef, "err", err)
		return WidgetConfig{}, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	s.flows.openGateway(sessionID, res.OrderRef)

	return WidgetConfig{
		Key:         s.provider.KeyID(),
		Amount:      res.AmountPaise,
		Currency:    res.Currency,
		Name:        s.branding.MerchantName,
		Description: s.branding.Description,
		OrderID:     res.OrderRef,
		Theme:       Theme{Color: s.branding.ThemeColor},
	}, nil
}

// Complete consumes the gateway completion callback. Every call resolves to a
// success or failure Result; the machine never stays in verifying. The cart
// is cleared only on verified success.
func (s *Service) Complete(ctx context.Context, sessionID string, res payments.PaymentResult) (Result, error) {
	if !s.flows.beginVerify(sessionID) {
		return Result{}, ErrFlowBusy
	}

	if !s.provider.VerifySignature(res) {
		s.flows.resolve(sessionID, StateFailed)
		s.logger.WarnContext(ctx, "payment signature rejected", "order_ref", res.OrderRef, "payment_ref", res.PaymentRef)
		return failureResult(res.PaymentRef), nil
	}

	o, err := s.orders.GetByProviderRef(ctx, res.OrderRef)
	if err != nil {
		s.flows.resolve(sessionID, StateFailed)
		s.logger.ErrorContext(ctx, "verified payment for unknown order", "order_ref", res.OrderRef, "err", err)
		return failureResult(res.PaymentRef), nil
	}

	if err := s.orders.MarkPaid(ctx, res.OrderRef, res.PaymentRef); err != nil {
		s.flows.resolve(sessionID, StateFailed)
		s.logger.ErrorContext(ctx, "mark paid failed", "order_ref", res.OrderRef, "err", err)
		return failureResult(res.PaymentRef), nil
	}

	now := time.Now()
	if err := s.payRepo.Record(ctx, payments.Payment{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		Provider:    s.provider.Name(),
		ProviderRef: res.PaymentRef,
		Status:      payments.StatusVerified,
		AmountPaise: o.AmountPaise,
		Currency:    o.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		// The order is already paid; the webhook will reconcile the payment
		// row. Log and continue.
		s.logger.ErrorContext(ctx, "payment record failed", "payment_ref", res.PaymentRef, "err", err)
	}

	s.archiveReceipt(ctx, o, res.PaymentRef, now)

	if s.notify != nil {
		if err := s.notify.OrderPaid(ctx, o, res.PaymentRef); err != nil {
			s.logger.ErrorContext(ctx, "order notification failed", "order_id", o.ID, "err", err)
		}
	}

	s.carts.Clear(sessionID)
	s.flows.resolve(sessionID, StateSucceeded)

	return Result{
		Success: true,
		Message: "Payment verified successfully",
		OrderID: res.OrderRef,
	}, nil
}

// Cancel is the gateway dismiss callback: back to idle, cart untouched. Not
// an error.
func (s *Service) Cancel(sessionID string) {
	s.flows.cancel(sessionID)
}

type receipt struct {
	OrderID     string          `json:"order_id"`
	ProviderRef string          `json:"provider_ref"`
	PaymentRef  string          `json:"payment_ref"`
	AmountPaise int64           `json:"amount_paise"`
	Currency    string          `json:"currency"`
	Cart        json.RawMessage `json:"cart"`
	PaidAt      time.Time       `json:"paid_at"`
}

func (s *Service) archiveReceipt(ctx context.Context, o orders.Order, paymentRef string, paidAt time.Time) {
	if s.receipts == nil {
		return
	}

	doc, err := json.Marshal(receipt{
		OrderID:     o.ID,
		ProviderRef: o.ProviderRef,
		PaymentRef:  paymentRef,
		AmountPaise: o.AmountPaise,
		Currency:    o.Currency,
		Cart:        json.RawMessage(o.CartJSON),
		PaidAt:      paidAt,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "receipt marshal failed", "order_id", o.ID, "err", err)
		return
	}

	out, err := s.receipts.Put(ctx, bytes.NewReader(doc), storage.PutInput{
		Filename:    o.ID + ".json",
		ContentType: "application/json",
		Size:        int64(len(doc)),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "receipt archive failed", "order_id", o.ID, "err", err)
		return
	}
	s.logger.InfoContext(ctx, "receipt archived", "order_id", o.ID, "key", out.Key)
}

func failureResult(paymentRef string) Result {
	return Result{
		Success: false,
		Message: "Payment verification failed. Please contact our support team with payment ID: " + paymentRef,
	}
}
