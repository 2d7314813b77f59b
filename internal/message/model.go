package message

import (
	"time"

	"printmitra-be/internal/order"
)

// Message is one chat entry on an order thread. Attachments reuse the order
// file shape so cleanup can treat both lists the same way.
type Message struct {
	ID        int64        `json:"id"`
	OrderID   int64        `json:"orderId"`
	SenderID  int64        `json:"senderId"`
	Body      string       `json:"body"`
	Files     []order.File `json:"files"`
	IsRead    bool         `json:"isRead"`
	CreatedAt time.Time    `json:"createdAt"`
}
