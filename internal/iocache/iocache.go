// Package iocache persists availability profiles behind a read-through cache.
package iocache

import (
	"sync"

	"github.com/huangsam/athome/internal/contract"
)

// ProfileStoreManager manages the active ProfileStore instance.
type ProfileStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	profiles     contract.ProfileStore
}

var _ contract.StoreManager = &ProfileStoreManager{} // Compile-time check

// NewProfileStoreManager wraps an existing store, mainly for tests and the MCP server.
func NewProfileStoreManager(store contract.ProfileStore) *ProfileStoreManager {
	return &ProfileStoreManager{profiles: store}
}

// GetProfileStore returns the profile store, or nil when none was initialized.
func (mgr *ProfileStoreManager) GetProfileStore() contract.ProfileStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.profiles
}
