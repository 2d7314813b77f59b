package notification

import (
	"context"
	"database/sql"
	"errors"

	"printmitra-be/internal/logger"

	"go.uber.org/zap"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListUnread(ctx context.Context, userID int64) ([]*Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const notificationColumns = `id, user_id, kind, order_id, payload, is_read, created_at`

func (r *repository) Create(ctx context.Context, n *Notification) error {
	log := logger.FromCtx(ctx)

	payload := n.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	err := r.db.QueryRowContext(ctx,
		"INSERT INTO notifications (user_id, kind, order_id, payload) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		n.UserID, n.Kind, n.OrderID, []byte(payload),
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		log.Error("db: failed to insert notification",
			zap.Int64("userID", n.UserID), zap.String("kind", string(n.Kind)), zap.Error(err))
	}
	return err
}

func (r *repository) ListUnread(ctx context.Context, userID int64) ([]*Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE user_id = $1 AND is_read = FALSE ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var n Notification
		var rawPayload []byte
		err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.OrderID, &rawPayload, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		n.Payload = rawPayload
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *repository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE", userID,
	).Scan(&count)
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE", userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
