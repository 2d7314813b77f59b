package user

import (
	"context"
	"database/sql"

	"printmitra-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, phone, name string, role Role) (User, error)
	CreateWithEmail(ctx context.Context, email, name, passwordHash string, role Role) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, phone, email, name, password_hash, role, created_at, updated_at"

func scanUser(row *sql.Row) (User, error) {
	var u User
	var phone sql.NullString

	err := row.Scan(&u.ID, &phone, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	u.Phone = phone.String
	return u, err
}

func (r *repository) Create(ctx context.Context, phone, name string, role Role) (User, error) {
	log := logger.FromCtx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx,
		"INSERT INTO users (phone, name, role) VALUES ($1, $2, $3) RETURNING "+userColumns,
		phone, name, role,
	))
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("phone", phone),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) CreateWithEmail(ctx context.Context, email, name, passwordHash string, role Role) (User, error) {
	log := logger.FromCtx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, name, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		email, name, passwordHash, role,
	))
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	))
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone = $1", phone,
	))
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email,
	))
}
