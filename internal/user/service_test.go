package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, phone, name string, role Role) (User, error) {
	args := m.Called(ctx, phone, name, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) CreateWithEmail(ctx context.Context, email, name, passwordHash string, role Role) (User, error) {
	args := m.Called(ctx, email, name, passwordHash, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func TestService_PhoneLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Existing user", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByPhone", ctx, "9876543210").
			Return(User{ID: 1, Phone: "9876543210", Role: RoleCustomer}, nil)

		svc := NewService(repo)
		token, u, err := svc.PhoneLogin(ctx, "9876543210")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Creates customer on first login", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByPhone", ctx, "9876543210").
			Return(User{}, sql.ErrNoRows)
		repo.On("Create", ctx, "9876543210", "Customer", RoleCustomer).
			Return(User{ID: 2, Phone: "9876543210", Role: RoleCustomer}, nil)

		svc := NewService(repo)
		_, u, err := svc.PhoneLogin(ctx, "9876543210")

		require.NoError(t, err)
		assert.Equal(t, int64(2), u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects malformed phone", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, _, err := svc.PhoneLogin(ctx, "12345")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})
}

func TestService_EmailLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hash, err := HashPassword("ownerpass")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "owner@shop.in").
			Return(User{ID: 9, Role: RoleShopOwner, PasswordHash: &hash}, nil)

		svc := NewService(repo)
		token, u, err := svc.EmailLogin(ctx, "owner@shop.in", "ownerpass")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, RoleShopOwner, u.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "owner@shop.in").
			Return(User{ID: 9, Role: RoleShopOwner, PasswordHash: &hash}, nil)

		svc := NewService(repo)
		_, _, err := svc.EmailLogin(ctx, "owner@shop.in", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "ghost@shop.in").
			Return(User{}, errors.New("no rows"))

		svc := NewService(repo)
		_, _, err := svc.EmailLogin(ctx, "ghost@shop.in", "pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("No password set", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "customer@mail.in").
			Return(User{ID: 3, Role: RoleCustomer}, nil)

		svc := NewService(repo)
		_, _, err := svc.EmailLogin(ctx, "customer@mail.in", "pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds when missing", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "admin@printmitra.in").Return(User{}, sql.ErrNoRows)
		repo.On("CreateWithEmail", ctx, "admin@printmitra.in", "Admin", mock.AnythingOfType("string"), RoleAdmin).
			Return(User{ID: 1, Role: RoleAdmin}, nil)

		svc := NewService(repo)
		require.NoError(t, svc.EnsureAdmin(ctx, "admin@printmitra.in", "adminpass"))
		repo.AssertExpectations(t)
	})

	t.Run("Noop when present", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "admin@printmitra.in").Return(User{ID: 1, Role: RoleAdmin}, nil)

		svc := NewService(repo)
		require.NoError(t, svc.EnsureAdmin(ctx, "admin@printmitra.in", "adminpass"))
		repo.AssertNotCalled(t, "CreateWithEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Noop when unconfigured", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		require.NoError(t, svc.EnsureAdmin(ctx, "", ""))
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, int64(44)).Return(User{}, sql.ErrNoRows)

		svc := NewService(repo)
		_, err := svc.GetByID(ctx, 44)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
