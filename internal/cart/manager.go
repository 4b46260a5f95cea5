package cart

import (
	"fmt"
	"sync"

	"github.com/quatet/storefront-api/pkg/logger"
)

// Manager owns one cart mirror per signed-in user. Mirrors are created on
// first use and torn down on logout, so tests and request handlers always
// receive an explicit instance instead of touching package state.
type Manager struct {
	gw   gatewayAPI
	logg *logger.Logger

	mu     sync.Mutex
	stores map[int64]*Store
}

// NewManager builds the process-wide cart registry.
func NewManager(gw gatewayAPI, logg *logger.Logger) (*Manager, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &Manager{
		gw:     gw,
		logg:   logg,
		stores: map[int64]*Store{},
	}, nil
}

// StoreFor returns the mirror for the given user, creating it on first use.
func (m *Manager) StoreFor(userID int64) (*Store, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[userID]; ok {
		return store, nil
	}
	store, err := NewStore(m.gw, m.logg)
	if err != nil {
		return nil, err
	}
	m.stores[userID] = store
	return store, nil
}

// Teardown drops the user's mirror; called on logout so the next login
// starts from a fresh server sync.
func (m *Manager) Teardown(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}

// TeardownAll drops every mirror. Used on shutdown.
func (m *Manager) TeardownAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores = map[int64]*Store{}
}
