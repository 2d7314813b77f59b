package shop

import (
	"context"
	"testing"
	"time"

	"printmitra-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Shop), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Shop, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Shop), args.Error(1)
}

func (m *MockRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Shop), args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context) ([]*Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Shop), args.Error(1)
}

func (m *MockRepository) SetOnline(ctx context.Context, id int64, online bool, at time.Time) error {
	args := m.Called(ctx, id, online, at)
	return args.Error(0)
}

func (m *MockRepository) SetWorkingHours(ctx context.Context, id int64, hours WeeklySchedule) error {
	args := m.Called(ctx, id, hours)
	return args.Error(0)
}

func newTestService(repo Repository, now time.Time) *service {
	return &service{
		repo: repo,
		loc:  time.UTC,
		now:  func() time.Time { return now },
	}
}

func TestService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetBySlug", ctx, "sharma-prints").Return(&Shop{
		ID:           1,
		WorkingHours: mondaySchedule("09:00", "18:00"),
	}, nil)

	svc := newTestService(repo, monday(12, 0))
	got, err := svc.GetBySlug(ctx, "sharma-prints")

	require.NoError(t, err)
	assert.True(t, got.Status.IsOpen)
	assert.Equal(t, ReasonSchedule, got.Status.Reason)
}

func TestService_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListActive", ctx).Return([]*Shop{
		{ID: 1, WorkingHours: mondaySchedule("09:00", "18:00")},
		{ID: 2, WorkingHours: mondaySchedule("14:00", "18:00")},
	}, nil)

	svc := newTestService(repo, monday(12, 0))
	got, err := svc.ListActive(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Status.IsOpen)
	assert.False(t, got[1].Status.IsOpen)
}

func TestService_ToggleOnline(t *testing.T) {
	ctx := context.Background()
	now := monday(10, 0)

	t.Run("Owner toggles offline", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(1)).Return(&Shop{
			ID: 1, OwnerID: 7, IsOnline: true,
			WorkingHours: mondaySchedule("09:00", "18:00"),
		}, nil)
		repo.On("SetOnline", ctx, int64(1), false, now).Return(nil)

		svc := newTestService(repo, now)
		got, err := svc.ToggleOnline(ctx, 1, 7, user.RoleShopOwner)

		require.NoError(t, err)
		assert.False(t, got.IsOnline)
		assert.False(t, got.Status.IsOpen)
		assert.Equal(t, ReasonOverride, got.Status.Reason)
		repo.AssertExpectations(t)
	})

	t.Run("Stranger forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(1)).Return(&Shop{ID: 1, OwnerID: 7}, nil)

		svc := newTestService(repo, now)
		_, err := svc.ToggleOnline(ctx, 1, 99, user.RoleCustomer)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Admin allowed", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(1)).Return(&Shop{ID: 1, OwnerID: 7}, nil)
		repo.On("SetOnline", ctx, int64(1), true, now).Return(nil)

		svc := newTestService(repo, now)
		_, err := svc.ToggleOnline(ctx, 1, 99, user.RoleAdmin)
		assert.NoError(t, err)
	})
}

func TestService_SetWorkingHours(t *testing.T) {
	ctx := context.Background()
	now := monday(10, 0)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(1)).Return(&Shop{ID: 1, OwnerID: 7}, nil)
		repo.On("SetWorkingHours", ctx, int64(1), mock.AnythingOfType("shop.WeeklySchedule")).Return(nil)

		svc := newTestService(repo, now)
		got, err := svc.SetWorkingHours(ctx, 1, 7, user.RoleShopOwner,
			[]byte(`{"monday": {"open": "09:00", "close": "18:00"}}`))

		require.NoError(t, err)
		assert.Contains(t, got.WorkingHours, "monday")
	})

	t.Run("Garbage payload rejected", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, int64(1)).Return(&Shop{ID: 1, OwnerID: 7}, nil)

		svc := newTestService(repo, now)
		_, err := svc.SetWorkingHours(ctx, 1, 7, user.RoleShopOwner, []byte(`"whenever"`))
		assert.ErrorIs(t, err, ErrBadSchedule)
	})
}
