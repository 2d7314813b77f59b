package message

import (
	"context"
	"database/sql"
	"encoding/json"

	"printmitra-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListByOrder(ctx context.Context, orderID int64) ([]*Message, error)
	MarkRead(ctx context.Context, orderID, readerID int64) (int64, error)
	ClearFiles(ctx context.Context, orderID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const messageColumns = `id, order_id, sender_id, body, files, is_read, created_at`

func scanMessage(scanner interface {
	Scan(dest ...interface{}) error
}) (*Message, error) {
	var m Message
	var rawFiles []byte

	err := scanner.Scan(&m.ID, &m.OrderID, &m.SenderID, &m.Body, &rawFiles, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(rawFiles) > 0 {
		if err := json.Unmarshal(rawFiles, &m.Files); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	log := logger.FromCtx(ctx)

	rawFiles, err := json.Marshal(m.Files)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx,
		"INSERT INTO messages (order_id, sender_id, body, files) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		m.OrderID, m.SenderID, m.Body, rawFiles,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		log.Error("db: failed to insert message", zap.Int64("orderID", m.OrderID), zap.Error(err))
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Message, error) {
	m, err := scanMessage(r.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE id = $1", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	return m, err
}

func (r *repository) ListByOrder(ctx context.Context, orderID int64) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE order_id = $1 ORDER BY created_at ASC", orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkRead flips every message in the thread that the reader did not send.
// Returns how many rows changed so the caller can skip the broadcast when
// nothing was unread.
func (r *repository) MarkRead(ctx context.Context, orderID, readerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE messages SET is_read = TRUE WHERE order_id = $1 AND sender_id <> $2 AND is_read = FALSE",
		orderID, readerID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) ClearFiles(ctx context.Context, orderID int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE messages SET files = '[]'::jsonb WHERE order_id = $1", orderID,
	)
	return err
}
