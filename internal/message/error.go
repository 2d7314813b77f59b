package message

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrForbidden       = errors.New("not a party to this order's conversation")
	ErrEmptyMessage    = errors.New("message needs a body or at least one file")
)
