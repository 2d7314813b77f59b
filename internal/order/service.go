package order

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/shop"
	"printmitra-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventSink receives order lifecycle events after the database change has
// committed. Implementations must never fail the mutation.
type EventSink interface {
	OrderCreated(ctx context.Context, o *Order)
	OrderStatusChanged(ctx context.Context, o *Order, actor user.Role)
	OrderDeleted(ctx context.Context, o *Order, actor user.Role)
}

// FileCleaner removes the uploaded files of an order from the object bucket
// and strips the stored file lists.
type FileCleaner interface {
	CleanupOrder(ctx context.Context, orderID int64) error
}

type CreateInput struct {
	CustomerID     int64
	ShopID         int64
	Type           Type
	Title          string
	Description    *string
	Specifications json.RawMessage
	Files          []File
	IsUrgent       bool
	EstimateAmount *float64
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*Order, error)
	Get(ctx context.Context, id, requesterID int64, role user.Role) (*Order, error)
	ListForCustomer(ctx context.Context, requesterID int64, includeDeleted bool) ([]*Order, error)
	ListForShop(ctx context.Context, shopID, requesterID int64, role user.Role, includeDeleted bool) ([]*Order, error)
	Transition(ctx context.Context, id, requesterID int64, role user.Role, to Status) (*Order, error)
	UpdateNotes(ctx context.Context, id, requesterID int64, role user.Role, notes *string) (*Order, error)
	SetAmounts(ctx context.Context, id, requesterID int64, role user.Role, estimate, final *float64) (*Order, error)
	AddFiles(ctx context.Context, id, requesterID int64, role user.Role, files []File) (*Order, error)
	SoftDelete(ctx context.Context, id, requesterID int64, role user.Role) error
}

type service struct {
	repo    Repository
	shops   shop.Repository
	events  EventSink
	cleaner FileCleaner
	loc     *time.Location
	now     func() time.Time
}

func NewService(repo Repository, shops shop.Repository, events EventSink, cleaner FileCleaner, loc *time.Location) Service {
	return &service{
		repo:    repo,
		shops:   shops,
		events:  events,
		cleaner: cleaner,
		loc:     loc,
		now:     time.Now,
	}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx)

	sh, err := s.shops.GetByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	// Walk-in orders require the shop to be open and taking queue entries.
	// Upload orders can be placed any time for the shop to pick up later.
	if in.Type == TypeWalkin {
		status := shop.ComputeStatus(sh, s.now().In(s.loc))
		if !sh.AcceptsWalkin || !status.IsOpen {
			return nil, ErrShopClosed
		}
	}

	o := &Order{
		PublicID:       uuid.New(),
		CustomerID:     in.CustomerID,
		ShopID:         in.ShopID,
		Type:           in.Type,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Specifications: in.Specifications,
		Files:          in.Files,
		Status:         StatusNew,
		IsUrgent:       in.IsUrgent,
		EstimateAmount: in.EstimateAmount,
	}
	if o.Files == nil {
		o.Files = []File{}
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.Int64("orderID", o.ID),
		zap.Int64("shopID", o.ShopID),
		zap.Int("orderNumber", o.OrderNumber))

	s.events.OrderCreated(ctx, o)
	return o, nil
}

func (s *service) Get(ctx context.Context, id, requesterID int64, role user.Role) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, o, requesterID, role); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListForCustomer(ctx context.Context, requesterID int64, includeDeleted bool) ([]*Order, error) {
	return s.repo.ListForCustomer(ctx, requesterID, includeDeleted)
}

func (s *service) ListForShop(ctx context.Context, shopID, requesterID int64, role user.Role, includeDeleted bool) ([]*Order, error) {
	if role != user.RoleAdmin {
		sh, err := s.shops.GetByID(ctx, shopID)
		if err != nil {
			return nil, err
		}
		if sh.OwnerID != requesterID {
			return nil, ErrForbidden
		}
	}
	return s.repo.ListForShop(ctx, shopID, includeDeleted)
}

func (s *service) Transition(ctx context.Context, id, requesterID int64, role user.Role, to Status) (*Order, error) {
	log := logger.FromCtx(ctx)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Deleted() {
		return nil, ErrOrderDeleted
	}

	switch role {
	case user.RoleAdmin:
		// full control
	case user.RoleShopOwner:
		if err := s.requireShopOwner(ctx, o, requesterID); err != nil {
			return nil, err
		}
	default:
		// Customers may only cancel their own order while it is still new.
		if !o.IsCustomer(requesterID) || to != StatusCancelled || o.Status != StatusNew {
			return nil, ErrForbidden
		}
	}

	if !CanTransition(o.Status, to) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}

	log.Info("order status changed",
		zap.Int64("orderID", id),
		zap.String("from", string(o.Status)),
		zap.String("to", string(to)))

	if to == StatusCompleted {
		s.cleanup(ctx, id)
	}

	s.events.OrderStatusChanged(ctx, updated, role)
	return updated, nil
}

func (s *service) UpdateNotes(ctx context.Context, id, requesterID int64, role user.Role, notes *string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Deleted() {
		return nil, ErrOrderDeleted
	}
	if role != user.RoleAdmin {
		if err := s.requireShopOwner(ctx, o, requesterID); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateNotes(ctx, id, notes)
}

func (s *service) SetAmounts(ctx context.Context, id, requesterID int64, role user.Role, estimate, final *float64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Deleted() {
		return nil, ErrOrderDeleted
	}
	if role != user.RoleAdmin {
		if err := s.requireShopOwner(ctx, o, requesterID); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateAmounts(ctx, id, estimate, final)
}

func (s *service) AddFiles(ctx context.Context, id, requesterID int64, role user.Role, files []File) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Deleted() {
		return nil, ErrOrderDeleted
	}
	if role != user.RoleAdmin && !o.IsCustomer(requesterID) {
		return nil, ErrForbidden
	}
	if Terminal(o.Status) {
		return nil, ErrInvalidTransition
	}
	return s.repo.AddFiles(ctx, id, files)
}

// SoftDelete hides the order from active lists while keeping the row for
// history. Completed orders are never deletable, for anyone: the record is
// the shop's receipt.
func (s *service) SoftDelete(ctx context.Context, id, requesterID int64, role user.Role) error {
	log := logger.FromCtx(ctx)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Deleted() {
		return ErrOrderDeleted
	}
	if o.Status == StatusCompleted {
		return ErrForbidden
	}

	switch role {
	case user.RoleAdmin:
		// any non-completed order
	case user.RoleShopOwner:
		if err := s.requireShopOwner(ctx, o, requesterID); err != nil {
			return err
		}
		if o.Status != StatusProcessing && o.Status != StatusReady {
			return ErrForbidden
		}
	default:
		if !o.IsCustomer(requesterID) || o.Status != StatusNew {
			return ErrForbidden
		}
	}

	if err := s.repo.SoftDelete(ctx, id, requesterID, s.now().In(s.loc)); err != nil {
		return err
	}

	log.Info("order soft deleted",
		zap.Int64("orderID", id),
		zap.Int64("deletedBy", requesterID),
		zap.String("role", string(role)))

	s.cleanup(ctx, id)

	o.DeletedBy = &requesterID
	s.events.OrderDeleted(ctx, o, role)
	return nil
}

// cleanup removes bucket objects best effort. A failure is logged and never
// surfaces to the caller: the status change or deletion already committed.
func (s *service) cleanup(ctx context.Context, orderID int64) {
	if err := s.cleaner.CleanupOrder(ctx, orderID); err != nil {
		logger.FromCtx(ctx).Warn("order file cleanup failed",
			zap.Int64("orderID", orderID), zap.Error(err))
	}
}

func (s *service) canView(ctx context.Context, o *Order, requesterID int64, role user.Role) error {
	if role == user.RoleAdmin || o.IsCustomer(requesterID) {
		return nil
	}
	if role == user.RoleShopOwner {
		return s.requireShopOwner(ctx, o, requesterID)
	}
	return ErrForbidden
}

func (s *service) requireShopOwner(ctx context.Context, o *Order, requesterID int64) error {
	sh, err := s.shops.GetByID(ctx, o.ShopID)
	if err != nil {
		return err
	}
	if sh.OwnerID != requesterID {
		return ErrForbidden
	}
	return nil
}
