package ws

// Event kinds delivered over the socket.
const (
	EventAuthenticated = "authenticated"
	EventNewOrder      = "new_order"
	EventOrderUpdate   = "order_update"
	EventOrderDeleted  = "order_deleted"
	EventNewMessage    = "new_message"
	EventUnreadCount   = "unread_count_update"
)

// Event is a typed payload addressed to one recipient. It lives for a single
// dispatch cycle and is never persisted.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
