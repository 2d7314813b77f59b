package dispatch

import (
	"context"
	"encoding/json"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/message"
	"printmitra-be/internal/notification"
	"printmitra-be/internal/order"
	"printmitra-be/internal/shop"
	"printmitra-be/internal/user"
	"printmitra-be/internal/ws"

	"go.uber.org/zap"
)

// Deliverer is the realtime fan-out surface the dispatcher pushes into.
type Deliverer interface {
	Deliver(userID int64, event ws.Event) bool
}

// Dispatcher turns committed order and chat mutations into realtime events
// and persisted notifications. It always runs after the database change, and
// never fails the mutation that triggered it: a user without a socket still
// gets the notification row, and a missing shop only produces a log line.
type Dispatcher struct {
	realtime      Deliverer
	shops         shop.Repository
	notifications notification.Repository
}

func New(realtime Deliverer, shops shop.Repository, notifications notification.Repository) *Dispatcher {
	return &Dispatcher{realtime: realtime, shops: shops, notifications: notifications}
}

func (d *Dispatcher) OrderCreated(ctx context.Context, o *order.Order) {
	owner, ok := d.shopOwner(ctx, o)
	if !ok {
		return
	}
	d.notify(ctx, owner, notification.KindNewOrder, o.ID, orderPayload(o))
	d.realtime.Deliver(owner, ws.Event{Type: ws.EventNewOrder, Data: o})
	d.pushUnreadCount(ctx, owner)
}

func (d *Dispatcher) OrderStatusChanged(ctx context.Context, o *order.Order, actor user.Role) {
	recipient, ok := d.otherParty(ctx, o, actor)
	if !ok {
		return
	}
	d.notify(ctx, recipient, notification.KindOrderUpdate, o.ID, orderPayload(o))
	d.realtime.Deliver(recipient, ws.Event{Type: ws.EventOrderUpdate, Data: o})
	d.pushUnreadCount(ctx, recipient)
}

func (d *Dispatcher) OrderDeleted(ctx context.Context, o *order.Order, actor user.Role) {
	recipient, ok := d.otherParty(ctx, o, actor)
	if !ok {
		return
	}
	d.notify(ctx, recipient, notification.KindOrderDeleted, o.ID, orderPayload(o))
	d.realtime.Deliver(recipient, ws.Event{Type: ws.EventOrderDeleted, Data: map[string]interface{}{
		"orderId":     o.ID,
		"orderNumber": o.OrderNumber,
		"shopId":      o.ShopID,
	}})
	d.pushUnreadCount(ctx, recipient)
}

func (d *Dispatcher) MessageSent(ctx context.Context, m *message.Message, o *order.Order) {
	var recipient int64
	if o.IsCustomer(m.SenderID) {
		owner, ok := d.shopOwner(ctx, o)
		if !ok {
			return
		}
		recipient = owner
	} else {
		recipient = o.CustomerID
	}

	payload, _ := json.Marshal(map[string]interface{}{"messageId": m.ID, "orderId": m.OrderID})
	d.notify(ctx, recipient, notification.KindNewMessage, o.ID, payload)
	d.realtime.Deliver(recipient, ws.Event{Type: ws.EventNewMessage, Data: m})
	d.pushUnreadCount(ctx, recipient)
}

func (d *Dispatcher) MessagesRead(ctx context.Context, orderID, readerID int64) {
	d.pushUnreadCount(ctx, readerID)
}

// otherParty resolves who should hear about a change the actor made.
func (d *Dispatcher) otherParty(ctx context.Context, o *order.Order, actor user.Role) (int64, bool) {
	if actor == user.RoleCustomer {
		return d.shopOwner(ctx, o)
	}
	return o.CustomerID, true
}

// shopOwner looks up the owning user of the order's shop. Shops can vanish
// under an order (admin removal), so a miss is logged and swallowed.
func (d *Dispatcher) shopOwner(ctx context.Context, o *order.Order) (int64, bool) {
	sh, err := d.shops.GetByID(ctx, o.ShopID)
	if err != nil {
		logger.FromCtx(ctx).Warn("dispatch: shop lookup failed, skipping event",
			zap.Int64("orderID", o.ID),
			zap.Int64("shopID", o.ShopID),
			zap.Error(err))
		return 0, false
	}
	return sh.OwnerID, true
}

func (d *Dispatcher) notify(ctx context.Context, userID int64, kind notification.Kind, orderID int64, payload json.RawMessage) {
	n := &notification.Notification{UserID: userID, Kind: kind, OrderID: &orderID, Payload: payload}
	if err := d.notifications.Create(ctx, n); err != nil {
		logger.FromCtx(ctx).Warn("dispatch: failed to persist notification",
			zap.Int64("userID", userID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

// pushUnreadCount refreshes the recipient's badge after any event that
// created or consumed notifications.
func (d *Dispatcher) pushUnreadCount(ctx context.Context, userID int64) {
	count, err := d.notifications.CountUnread(ctx, userID)
	if err != nil {
		logger.FromCtx(ctx).Warn("dispatch: failed to count unread notifications",
			zap.Int64("userID", userID), zap.Error(err))
		return
	}
	d.realtime.Deliver(userID, ws.Event{Type: ws.EventUnreadCount, Data: map[string]int{"count": count}})
}

func orderPayload(o *order.Order) json.RawMessage {
	payload, _ := json.Marshal(map[string]interface{}{
		"orderId":     o.ID,
		"orderNumber": o.OrderNumber,
		"status":      o.Status,
	})
	return payload
}
