package storage

import (
	"context"
	"sync"
	"time"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/port"
)

type memorySession struct {
	form      domain.OrderForm
	expiresAt time.Time
}

// MemoryAdapter keeps sessions in process memory. Forms are copied in and out
// so callers never share item slices with the store.
type MemoryAdapter struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	claimed  map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryAdapter(ttl time.Duration) *MemoryAdapter {
	return &MemoryAdapter{
		sessions: make(map[string]memorySession),
		claimed:  make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryAdapter) Load(ctx context.Context, sessionID string) (*domain.OrderForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || m.expired(s.expiresAt) {
		delete(m.sessions, sessionID)
		return nil, port.ErrSessionNotFound
	}
	form := copyForm(&s.form)
	return &form, nil
}

func (m *MemoryAdapter) Save(ctx context.Context, sessionID string, form *domain.OrderForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sessionID] = memorySession{
		form:      copyForm(form),
		expiresAt: m.expiry(m.ttl),
	}
	return nil
}

func (m *MemoryAdapter) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryAdapter) Claim(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if exp, ok := m.claimed[sessionID]; ok && !m.expired(exp) {
		return false, nil
	}
	m.claimed[sessionID] = m.expiry(claimKeyTTL)
	return true, nil
}

// Sweep drops expired sessions and claims, returning how many sessions went.
func (m *MemoryAdapter) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if m.expired(s.expiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	for id, exp := range m.claimed {
		if m.expired(exp) {
			delete(m.claimed, id)
		}
	}
	return n
}

// Len reports the number of stored sessions, expired or not.
func (m *MemoryAdapter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryAdapter) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *MemoryAdapter) expired(at time.Time) bool {
	return !at.IsZero() && !m.now().Before(at)
}

func copyForm(f *domain.OrderForm) domain.OrderForm {
	c := *f
	c.Items = append([]domain.LineItem(nil), f.Items...)
	return c
}
