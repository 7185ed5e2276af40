package checkout

import "errors"

var (
	// ErrEmptyCart: checkout started with a zero-amount cart. The gateway is
	// never contacted.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrFlowBusy: a checkout step arrived while another is still in flight
	// for the same session.
	ErrFlowBusy = errors.New("checkout already in progress")

	ErrOrderCreateFailed = errors.New("order creation failed")
)
