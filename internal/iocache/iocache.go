// Package iocache persists modeline calculations and check history.
package iocache

import (
	"sync"

	"github.com/arcadecab/cabcheck/internal/contract"
)

// CacheStoreManager manages the modeline cache and check history stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	modeline     contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetModelineStore returns the modeline CacheStore.
func (mgr *CacheStoreManager) GetModelineStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.modeline
}

// GetHistoryStore returns the check HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
