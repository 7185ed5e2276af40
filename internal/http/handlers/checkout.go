package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divyanshi070700/Undiyu-2/internal/http/middleware"
	"github.com/Divyanshi070700/Undiyu-2/internal/http/validation"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/cart"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/checkout"
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/payments"
	"github.com/Divyanshi070700/Undiyu-2/internal/shared/apperr"
)

// CheckoutHandler drives the payment protocol endpoints:
// POST /api/create-razorpay-order, POST /api/verify-payment,
// POST /api/checkout/cancel.
type CheckoutHandler struct {
	Checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{Checkout: svc}
}

type createOrderInput struct {
	Amount   int64              `json:"amount" binding:"omitempty,gte=0"`
	Currency string             `json:"currency" binding:"omitempty,oneof=INR"`
	Cart     []cart.LineSummary `json:"cart"`
}

// CreateOrder starts a checkout for the session cart. The client's amount is
// cross-checked; the server-side cart snapshot is what the gateway order is
// created from.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var in createOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &in)))
		return
	}

	sid := middleware.CartSessionID(c)
	cfg, err := h.Checkout.Start(c.Request.Context(), sid, in.Amount)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			middleware.Fail(c, apperr.InvalidErr("Please add items to cart", nil))
		case errors.Is(err, checkout.ErrFlowBusy):
			middleware.Fail(c, apperr.ConflictErr("A checkout is already in progress."))
		default:
			middleware.Fail(c, &apperr.AppError{
				Kind:      apperr.Internal,
				PublicMsg: "Failed to create order",
				Err:       err,
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       cfg.OrderID,
		"amount":   cfg.Amount,
		"currency": cfg.Currency,
		"checkout": cfg,
	})
}

type verifyPaymentInput struct {
	OrderID   string             `json:"razorpay_order_id" binding:"required"`
	PaymentID string             `json:"razorpay_payment_id" binding:"required"`
	Signature string             `json:"razorpay_signature" binding:"required"`
	Cart      []cart.LineSummary `json:"cart"`
}

// VerifyPayment consumes the gateway completion callback. The response always
// carries success true or false; a failure message includes the gateway
// payment id so support can trace it.
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	var in verifyPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request body is invalid.", validation.FromBindError(err, &in)))
		return
	}

	sid := middleware.CartSessionID(c)
	res, err := h.Checkout.Complete(c.Request.Context(), sid, payments.PaymentResult{
		OrderRef:   in.OrderID,
		PaymentRef: in.PaymentID,
		Signature:  in.Signature,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrFlowBusy) {
			middleware.Fail(c, apperr.ConflictErr("A checkout step is already in progress."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

// Cancel is the gateway dismiss callback: the flow returns to idle, the cart
// is untouched.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	sid := middleware.CartSessionID(c)
	h.Checkout.Cancel(sid)
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": h.Checkout.State(sid)})
}

// State reports the session's checkout state (debugging aid).
func (h *CheckoutHandler) State(c *gin.Context) {
	sid := middleware.CartSessionID(c)
	c.JSON(http.StatusOK, gin.H{"state": h.Checkout.State(sid)})
}
