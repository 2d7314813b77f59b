package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/shop"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByPublicID(ctx context.Context, publicID string) (*Order, error)
	ListForCustomer(ctx context.Context, customerID int64, includeDeleted bool) ([]*Order, error)
	ListForShop(ctx context.Context, shopID int64, includeDeleted bool) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
	UpdateNotes(ctx context.Context, id int64, notes *string) (*Order, error)
	UpdateAmounts(ctx context.Context, id int64, estimate, final *float64) (*Order, error)
	AddFiles(ctx context.Context, id int64, files []File) (*Order, error)
	SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error
	ClearFiles(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, order_number, public_id, customer_id, shop_id, type, title, description,
	specifications, files, status, is_urgent, estimate_amount, final_amount, notes,
	deleted_at, deleted_by, created_at, updated_at`

func scanOrder(scanner interface {
	Scan(dest ...interface{}) error
}) (*Order, error) {
	var o Order
	var rawSpecs, rawFiles []byte

	err := scanner.Scan(
		&o.ID, &o.OrderNumber, &o.PublicID, &o.CustomerID, &o.ShopID, &o.Type, &o.Title, &o.Description,
		&rawSpecs, &rawFiles, &o.Status, &o.IsUrgent, &o.EstimateAmount, &o.FinalAmount, &o.Notes,
		&o.DeletedAt, &o.DeletedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Specifications = rawSpecs
	if len(rawFiles) > 0 {
		if err := json.Unmarshal(rawFiles, &o.Files); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

// Create inserts the order and assigns the next per-shop order number inside
// a single transaction. The shop row is locked so concurrent creations for
// the same shop serialize and never reuse a number.
func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var shopID int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM shops WHERE id = $1 FOR UPDATE", o.ShopID,
	).Scan(&shopID)
	if err != nil {
		if err == sql.ErrNoRows {
			return shop.ErrShopNotFound
		}
		return err
	}

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders WHERE shop_id = $1", o.ShopID,
	).Scan(&o.OrderNumber)
	if err != nil {
		return err
	}

	rawFiles, err := json.Marshal(o.Files)
	if err != nil {
		return err
	}
	specs := o.Specifications
	if len(specs) == 0 {
		specs = json.RawMessage("{}")
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (order_number, public_id, customer_id, shop_id, type, title, description,
			specifications, files, status, is_urgent, estimate_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		o.OrderNumber, o.PublicID, o.CustomerID, o.ShopID, o.Type, o.Title, o.Description,
		[]byte(specs), rawFiles, o.Status, o.IsUrgent, o.EstimateAmount,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("db: failed to insert order", zap.Int64("shopID", o.ShopID), zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) GetByPublicID(ctx context.Context, publicID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE public_id = $1", publicID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) ListForCustomer(ctx context.Context, customerID int64, includeDeleted bool) ([]*Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE customer_id = $1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY created_at DESC"
	return r.list(ctx, query, customerID)
}

func (r *repository) ListForShop(ctx context.Context, shopID int64, includeDeleted bool) ([]*Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE shop_id = $1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY created_at DESC"
	return r.list(ctx, query, shopID)
}

func (r *repository) list(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("db: failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING "+orderColumns,
		status, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) UpdateNotes(ctx context.Context, id int64, notes *string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"UPDATE orders SET notes = $1, updated_at = NOW() WHERE id = $2 RETURNING "+orderColumns,
		notes, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) UpdateAmounts(ctx context.Context, id int64, estimate, final *float64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`UPDATE orders SET estimate_amount = COALESCE($1, estimate_amount),
			final_amount = COALESCE($2, final_amount), updated_at = NOW()
		WHERE id = $3 RETURNING `+orderColumns,
		estimate, final, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) AddFiles(ctx context.Context, id int64, files []File) (*Order, error) {
	rawFiles, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}

	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"UPDATE orders SET files = files || $1::jsonb, updated_at = NOW() WHERE id = $2 RETURNING "+orderColumns,
		rawFiles, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET deleted_at = $1, deleted_by = $2, updated_at = NOW() WHERE id = $3 AND deleted_at IS NULL",
		at, deletedBy, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ClearFiles empties the stored file list after the bucket objects are gone.
func (r *repository) ClearFiles(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET files = '[]'::jsonb, updated_at = NOW() WHERE id = $1",
		id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
