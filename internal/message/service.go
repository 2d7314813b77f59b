package message

import (
	"context"
	"strings"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/order"
	"printmitra-be/internal/shop"
	"printmitra-be/internal/user"

	"go.uber.org/zap"
)

// EventSink receives chat events once the message row is committed.
type EventSink interface {
	MessageSent(ctx context.Context, m *Message, o *order.Order)
	MessagesRead(ctx context.Context, orderID, readerID int64)
}

type SendInput struct {
	OrderID  int64
	SenderID int64
	Role     user.Role
	Body     string
	Files    []order.File
}

type Service interface {
	Send(ctx context.Context, in SendInput) (*Message, error)
	ListByOrder(ctx context.Context, orderID, requesterID int64, role user.Role) ([]*Message, error)
	MarkRead(ctx context.Context, orderID, readerID int64, role user.Role) error
}

type service struct {
	repo   Repository
	orders order.Repository
	shops  shop.Repository
	events EventSink
}

func NewService(repo Repository, orders order.Repository, shops shop.Repository, events EventSink) Service {
	return &service{repo: repo, orders: orders, shops: shops, events: events}
}

func (s *service) Send(ctx context.Context, in SendInput) (*Message, error) {
	log := logger.FromCtx(ctx)

	body := strings.TrimSpace(in.Body)
	if body == "" && len(in.Files) == 0 {
		return nil, ErrEmptyMessage
	}

	o, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Deleted() {
		return nil, order.ErrOrderDeleted
	}
	if err := s.requireParty(ctx, o, in.SenderID, in.Role); err != nil {
		return nil, err
	}

	m := &Message{
		OrderID:  in.OrderID,
		SenderID: in.SenderID,
		Body:     body,
		Files:    in.Files,
	}
	if m.Files == nil {
		m.Files = []order.File{}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	log.Info("message sent",
		zap.Int64("orderID", in.OrderID),
		zap.Int64("senderID", in.SenderID))

	s.events.MessageSent(ctx, m, o)
	return m, nil
}

// ListByOrder keeps working on soft-deleted orders: the conversation is part
// of the order's history.
func (s *service) ListByOrder(ctx context.Context, orderID, requesterID int64, role user.Role) ([]*Message, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParty(ctx, o, requesterID, role); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, orderID)
}

// MarkRead clears the reader's unread state for a thread. Read receipts are
// tracked on the messages themselves, independent of notification rows.
func (s *service) MarkRead(ctx context.Context, orderID, readerID int64, role user.Role) error {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.requireParty(ctx, o, readerID, role); err != nil {
		return err
	}

	changed, err := s.repo.MarkRead(ctx, orderID, readerID)
	if err != nil {
		return err
	}
	if changed > 0 {
		s.events.MessagesRead(ctx, orderID, readerID)
	}
	return nil
}

func (s *service) requireParty(ctx context.Context, o *order.Order, userID int64, role user.Role) error {
	if role == user.RoleAdmin || o.IsCustomer(userID) {
		return nil
	}
	sh, err := s.shops.GetByID(ctx, o.ShopID)
	if err != nil {
		return err
	}
	if sh.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}
