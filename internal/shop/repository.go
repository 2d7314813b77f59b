package shop

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"printmitra-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Shop, error)
	GetBySlug(ctx context.Context, slug string) (*Shop, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*Shop, error)
	ListActive(ctx context.Context) ([]*Shop, error)
	SetOnline(ctx context.Context, id int64, online bool, at time.Time) error
	SetWorkingHours(ctx context.Context, id int64, hours WeeklySchedule) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const shopColumns = `id, owner_id, name, slug, address, phone, email, working_hours,
	is_online, manual_override_at, accepts_walkin, is_approved, is_public, created_at, updated_at`

func scanShop(scanner interface {
	Scan(dest ...interface{}) error
}) (*Shop, error) {
	var s Shop
	var rawHours []byte

	err := scanner.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Address, &s.Phone, &s.Email, &rawHours,
		&s.IsOnline, &s.ManualOverrideAt, &s.AcceptsWalkin, &s.IsApproved, &s.IsPublic,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Legacy and free-text formats are canonicalized here, at the model
	// boundary, so the availability calculator never sees them.
	s.WorkingHours = NormalizeWorkingHours(rawHours)
	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Shop, error) {
	s, err := scanShop(r.db.QueryRowContext(ctx,
		"SELECT "+shopColumns+" FROM shops WHERE id = $1", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	return s, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Shop, error) {
	s, err := scanShop(r.db.QueryRowContext(ctx,
		"SELECT "+shopColumns+" FROM shops WHERE slug = $1", slug,
	))
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	return s, err
}

func (r *repository) GetByOwnerID(ctx context.Context, ownerID int64) (*Shop, error) {
	s, err := scanShop(r.db.QueryRowContext(ctx,
		"SELECT "+shopColumns+" FROM shops WHERE owner_id = $1", ownerID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	return s, err
}

func (r *repository) ListActive(ctx context.Context) ([]*Shop, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+shopColumns+" FROM shops WHERE is_approved = TRUE AND is_public = TRUE ORDER BY created_at DESC",
	)
	if err != nil {
		log.Error("db: failed to list active shops", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var shops []*Shop
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *repository) SetOnline(ctx context.Context, id int64, online bool, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE shops SET is_online = $1, manual_override_at = $2, updated_at = NOW() WHERE id = $3",
		online, at, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShopNotFound
	}
	return nil
}

func (r *repository) SetWorkingHours(ctx context.Context, id int64, hours WeeklySchedule) error {
	payload, err := json.Marshal(hours)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE shops SET working_hours = $1, updated_at = NOW() WHERE id = $2",
		payload, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShopNotFound
	}
	return nil
}
