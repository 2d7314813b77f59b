package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("not allowed to perform this action on the order")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderDeleted      = errors.New("order has been deleted")
	ErrShopClosed        = errors.New("shop is not accepting walk-in orders right now")
)
