package chat

import (
	"fmt"

	"print3d-order-admin/pkg"
)

var ErrEmptyText = fmt.Errorf("%w: message text is empty", pkg.ErrValidation)

// ErrDeliveryFailed carries Telegram's reason for refusing a message, when it
// gave one.
type ErrDeliveryFailed struct {
	OrderID int64
	Reason  string
	Err     error
}

func (e *ErrDeliveryFailed) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("failed to deliver message for order %d: %s", e.OrderID, e.Err)
	}
	return fmt.Sprintf("failed to deliver message for order %d: %s", e.OrderID, e.Reason)
}

func (e *ErrDeliveryFailed) Unwrap() error {
	return e.Err
}

func (e *ErrDeliveryFailed) Is(target error) bool {
	return target == pkg.ErrDelivery
}
