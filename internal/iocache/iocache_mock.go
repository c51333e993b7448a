package iocache

import (
	"context"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetProfileStore implements the StoreManager interface.
func (m *MockStoreManager) GetProfileStore() contract.ProfileStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ProfileStore)
	return store
}

// MockProfileStore is a mock implementation of ProfileStore for testing.
type MockProfileStore struct {
	mock.Mock
}

var _ contract.ProfileStore = &MockProfileStore{} // Compile-time check

// Get implements the ProfileStore interface.
func (m *MockProfileStore) Get(ctx context.Context, clientID string) (schema.ClientProfile, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(schema.ClientProfile), args.Error(1)
}

// Put implements the ProfileStore interface.
func (m *MockProfileStore) Put(ctx context.Context, profile schema.ClientProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// Delete implements the ProfileStore interface.
func (m *MockProfileStore) Delete(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// List implements the ProfileStore interface.
func (m *MockProfileStore) List(ctx context.Context, filter schema.ProfileFilter) ([]schema.ClientProfile, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]schema.ClientProfile)
	return out, args.Error(1)
}

// History implements the ProfileStore interface.
func (m *MockProfileStore) History(ctx context.Context) ([]schema.PresenceRow, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]schema.PresenceRow)
	return out, args.Error(1)
}

// GetStatus implements the ProfileStore interface.
func (m *MockProfileStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ProfileStore interface.
func (m *MockProfileStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
