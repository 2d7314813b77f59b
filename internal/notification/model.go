package notification

import (
	"encoding/json"
	"time"
)

// Kind mirrors the realtime event type that produced the notification, so a
// client reconnecting after downtime can replay what it missed over the
// socket protocol it already speaks.
type Kind string

const (
	KindNewOrder     Kind = "new_order"
	KindOrderUpdate  Kind = "order_update"
	KindOrderDeleted Kind = "order_deleted"
	KindNewMessage   Kind = "new_message"
)

type Notification struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Kind      Kind            `json:"kind"`
	OrderID   *int64          `json:"orderId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	IsRead    bool            `json:"isRead"`
	CreatedAt time.Time       `json:"createdAt"`
}
