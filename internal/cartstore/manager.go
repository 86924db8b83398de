package cartstore

import (
	"context"
	"errors"
	"log"
	"sync"

	"skishop-bff/internal/domain"
)

// Manager hands out one Store per device, hydrating persisted identity on
// first access.
type Manager struct {
	carts    CartService
	catalog  ProductCatalog
	identity IdentityStore
	channels ChannelFactory
	logger   *log.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(carts CartService, catalog ProductCatalog, identity IdentityStore, channels ChannelFactory, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		carts:    carts,
		catalog:  catalog,
		identity: identity,
		channels: channels,
		logger:   logger,
		stores:   make(map[string]*Store),
	}
}

// Resolve returns the store for a device. A returning shopper gets their
// persisted session/customer identity back, so Initialize reattaches to the
// same cart instead of minting a new one.
func (m *Manager) Resolve(ctx context.Context, deviceID string) *Store {
	m.mu.Lock()
	if store, ok := m.stores[deviceID]; ok {
		m.mu.Unlock()
		return store
	}
	m.mu.Unlock()

	store := newStore(deviceID, m.carts, m.catalog, m.identity, m.channels, m.logger)
	if m.identity != nil {
		rec, err := m.identity.Get(ctx, deviceID)
		switch {
		case err == nil:
			store.sessionID = rec.SessionID
			store.customerID = rec.CustomerID
		case !errors.Is(err, domain.ErrNotFound):
			m.logger.Printf("load shopper identity %s: %v", deviceID, err)
		}
	}
	if store.sessionID == "" {
		store.sessionID = newSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[deviceID]; ok {
		return existing
	}
	m.stores[deviceID] = store
	return store
}

// DisconnectAll tears down every store's realtime channel, for shutdown.
func (m *Manager) DisconnectAll() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, store := range m.stores {
		stores = append(stores, store)
	}
	m.mu.Unlock()

	for _, store := range stores {
		store.DisconnectRealtime()
	}
}
