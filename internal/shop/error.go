package shop

import "errors"

var (
	ErrShopNotFound = errors.New("shop not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadSchedule  = errors.New("working hours payload could not be interpreted")
)
