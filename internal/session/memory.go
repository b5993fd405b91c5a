package session

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository держит сессии в памяти одного процесса.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session
	closed   bool
	done     chan struct{}
	now      func() time.Time
}

// NewMemoryRepository запускает фоновую очистку истёкших сессий с периодом cleanupInterval.
func NewMemoryRepository(cleanupInterval time.Duration) *MemoryRepository {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	m := &MemoryRepository{
		sessions: make(map[string]Session),
		done:     make(chan struct{}),
		now:      time.Now,
	}
	go m.cleanupLoop(cleanupInterval)
	return m
}

func (m *MemoryRepository) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryRepository) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	s, ok := m.sessions[id]
	if !ok || s.Expired(m.now()) {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.sessions, id)
	return nil
}

func (m *MemoryRepository) Touch(_ context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if s, ok := m.sessions[id]; ok {
		s.ExpiresAt = expiresAt
		m.sessions[id] = s
	}
	return nil
}

// Count возвращает число записей, включая ещё не вычищенные истёкшие.
func (m *MemoryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close останавливает очистку. Повторный вызов безопасен.
func (m *MemoryRepository) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	m.sessions = nil
	return nil
}

func (m *MemoryRepository) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryRepository) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	now := m.now()
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
}
