package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(id int64, phone string, role Role) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "phone", "email", "name", "password_hash", "role", "created_at", "updated_at",
	}).AddRow(id, phone, nil, "Customer", nil, role, now, now)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(phone, name, role\)`).
			WithArgs("9876543210", "Customer", RoleCustomer).
			WillReturnRows(userRows(1, "9876543210", RoleCustomer))

		u, err := repo.Create(ctx, "9876543210", "Customer", RoleCustomer)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, "9876543210", "Customer", RoleCustomer)
		assert.Error(t, err)
	})

	t.Run("WithEmail", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "phone", "email", "name", "password_hash", "role", "created_at", "updated_at",
		}).AddRow(int64(1), nil, "admin@printmitra.in", "Admin", "hash", RoleAdmin, now, now)

		mock.ExpectQuery(`INSERT INTO users \(email, name, password_hash, role\)`).
			WithArgs("admin@printmitra.in", "Admin", "hash", RoleAdmin).
			WillReturnRows(rows)

		u, err := repo.CreateWithEmail(ctx, "admin@printmitra.in", "Admin", "hash", RoleAdmin)
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})
}

func TestRepository_Finders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("FindByPhone", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE phone = \$1`).
			WithArgs("9876543210").
			WillReturnRows(userRows(3, "9876543210", RoleCustomer))

		u, err := repo.FindByPhone(ctx, "9876543210")
		assert.NoError(t, err)
		assert.Equal(t, int64(3), u.ID)
	})

	t.Run("FindByID", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(userRows(5, "9123456780", RoleShopOwner))

		u, err := repo.FindByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, RoleShopOwner, u.Role)
	})

	t.Run("FindByEmail_NoRows", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "phone", "email", "name", "password_hash", "role", "created_at", "updated_at",
			}))

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.Error(t, err)
	})
}
