package cart

import (
	"sync"
	"time"
)

const defaultSessionTTL = 24 * time.Hour

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// Manager holds one cart per browser session. Sessions are identified by the
// cookie value assigned at the web layer; idle carts are dropped after a TTL.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
}

func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		ttl:     defaultSessionTTL,
	}
}

// Get returns the cart for a session, creating it on first use
func (m *Manager) Get(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sessionID]
	if !ok {
		e = &entry{cart: New()}
		m.entries[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e.cart
}

// Drop discards a session's cart
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
}

// Sweep removes carts idle longer than the TTL, returns how many were dropped
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	dropped := 0
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, id)
			dropped++
		}
	}
	return dropped
}

// Size reports the number of live session carts
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
