package replay

import (
	"context"
	"sync"
	"time"
)

// compile-time interface check.
var _ Guard = (*Memory)(nil)

// DefaultTTL bounds how long an event ID is remembered. The platform only
// redelivers for a short window, so entries can expire aggressively.
const DefaultTTL = time.Hour

// Memory is an in-process Guard. Suitable for a single instance; use Redis
// when webhook traffic is spread across replicas.
type Memory struct {
	mu   sync.Mutex
	seen map[string]time.Time // event ID -> expiry
	ttl  time.Duration

	now func() time.Time // test hook
}

// NewMemory creates an in-memory guard. A ttl of 0 uses DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Seen marks the event ID and reports whether it was already marked and
// not yet expired. Expired entries are evicted on access.
func (m *Memory) Seen(_ context.Context, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evict(now)

	if expiry, ok := m.seen[eventID]; ok && expiry.After(now) {
		return true, nil
	}
	m.seen[eventID] = now.Add(m.ttl)
	return false, nil
}

// Close releases the guard's state.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = make(map[string]time.Time)
	return nil
}

func (m *Memory) evict(now time.Time) {
	for eventID, expiry := range m.seen {
		if !expiry.After(now) {
			delete(m.seen, eventID)
		}
	}
}
