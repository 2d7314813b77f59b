package shop

import (
	"context"
	"time"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/user"

	"go.uber.org/zap"
)

// ShopWithStatus pairs a shop with its computed availability for listings.
type ShopWithStatus struct {
	*Shop
	Status Status `json:"status"`
}

type Service interface {
	GetByID(ctx context.Context, id int64) (*Shop, error)
	GetBySlug(ctx context.Context, slug string) (*ShopWithStatus, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*ShopWithStatus, error)
	ListActive(ctx context.Context) ([]*ShopWithStatus, error)
	Availability(s *Shop) Status
	ToggleOnline(ctx context.Context, shopID, requesterID int64, requesterRole user.Role) (*ShopWithStatus, error)
	SetWorkingHours(ctx context.Context, shopID, requesterID int64, requesterRole user.Role, raw []byte) (*ShopWithStatus, error)
}

type service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc, now: time.Now}
}

func (s *service) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *service) withStatus(sh *Shop) *ShopWithStatus {
	return &ShopWithStatus{Shop: sh, Status: ComputeStatus(sh, s.localNow())}
}

func (s *service) GetByID(ctx context.Context, id int64) (*Shop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ShopWithStatus, error) {
	sh, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withStatus(sh), nil
}

func (s *service) GetByOwnerID(ctx context.Context, ownerID int64) (*ShopWithStatus, error) {
	sh, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.withStatus(sh), nil
}

func (s *service) ListActive(ctx context.Context) ([]*ShopWithStatus, error) {
	shops, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*ShopWithStatus, 0, len(shops))
	for _, sh := range shops {
		out = append(out, s.withStatus(sh))
	}
	return out, nil
}

func (s *service) Availability(sh *Shop) Status {
	return ComputeStatus(sh, s.localNow())
}

func (s *service) ToggleOnline(ctx context.Context, shopID, requesterID int64, requesterRole user.Role) (*ShopWithStatus, error) {
	log := logger.FromCtx(ctx)

	sh, err := s.repo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if sh.OwnerID != requesterID && requesterRole != user.RoleAdmin {
		return nil, ErrForbidden
	}

	now := s.localNow()
	online := !sh.IsOnline
	if err := s.repo.SetOnline(ctx, shopID, online, now); err != nil {
		log.Error("failed to toggle shop online flag",
			zap.Int64("shop_id", shopID),
			zap.Error(err),
		)
		return nil, err
	}

	sh.IsOnline = online
	sh.ManualOverrideAt = &now

	log.Info("shop online flag toggled",
		zap.Int64("shop_id", shopID),
		zap.Bool("is_online", online),
	)
	return s.withStatus(sh), nil
}

func (s *service) SetWorkingHours(ctx context.Context, shopID, requesterID int64, requesterRole user.Role, raw []byte) (*ShopWithStatus, error) {
	sh, err := s.repo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if sh.OwnerID != requesterID && requesterRole != user.RoleAdmin {
		return nil, ErrForbidden
	}

	hours := NormalizeWorkingHours(raw)
	if hours == nil {
		return nil, ErrBadSchedule
	}

	if err := s.repo.SetWorkingHours(ctx, shopID, hours); err != nil {
		return nil, err
	}

	sh.WorkingHours = hours
	return s.withStatus(sh), nil
}
