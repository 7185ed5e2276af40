package payments

import "errors"

var (
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrUnknownEvent      = errors.New("unknown webhook event type")
)
