package store

import (
	"context"
	"testing"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]store.Store, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) DeleteCascade(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockStoreRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestStore(t *testing.T, ownerID uuid.UUID) *store.Store {
	t.Helper()
	st, err := store.NewStore(ownerID, "Duka la Mama Njeri")
	require.NoError(t, err)
	return st
}

func TestStoreService_Create(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewStoreService(repo, zap.NewNop())
	ownerID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*store.Store")).Return(nil)

	resp, err := svc.Create(context.Background(), ownerID, CreateStoreRequest{
		Name:    "Duka la Mama Njeri",
		Paybill: "522533",
	})

	require.NoError(t, err)
	assert.Equal(t, "Duka la Mama Njeri", resp.Name)
	assert.Equal(t, "522533", resp.Paybill)
	assert.Equal(t, ownerID, resp.OwnerID)
	repo.AssertExpectations(t)
}

func TestStoreService_GetByIDNotOwned(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewStoreService(repo, zap.NewNop())
	ownerID := uuid.New()
	storeID := uuid.New()

	repo.On("FindByIDForOwner", mock.Anything, ownerID, storeID).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(context.Background(), ownerID, storeID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStoreService_UpdatePartial(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewStoreService(repo, zap.NewNop())
	ownerID := uuid.New()
	st := newTestStore(t, ownerID)
	require.NoError(t, st.Update("Duka la Mama Njeri", "Fresh produce"))

	repo.On("FindByIDForOwner", mock.Anything, ownerID, st.ID).Return(st, nil)
	repo.On("Save", mock.Anything, st).Return(nil)

	newName := "Njeri Fresh Duka"
	resp, err := svc.Update(context.Background(), ownerID, st.ID, UpdateStoreRequest{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Njeri Fresh Duka", resp.Name)
	// Description untouched by a name-only patch
	assert.Equal(t, "Fresh produce", resp.Description)
}

func TestStoreService_Delete(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewStoreService(repo, zap.NewNop())
	ownerID := uuid.New()
	storeID := uuid.New()

	repo.On("DeleteCascade", mock.Anything, ownerID, storeID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), ownerID, storeID))
	repo.AssertExpectations(t)
}

func TestStoreService_List(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewStoreService(repo, zap.NewNop())
	ownerID := uuid.New()
	st := newTestStore(t, ownerID)

	repo.On("FindAllForOwner", mock.Anything, ownerID, mock.AnythingOfType("shared.Filter")).Return([]store.Store{*st}, nil)
	repo.On("CountForOwner", mock.Anything, ownerID).Return(int64(1), nil)

	stores, total, err := svc.List(context.Background(), ownerID, StoreListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, stores, 1)
	assert.Equal(t, st.Name, stores[0].Name)
}
