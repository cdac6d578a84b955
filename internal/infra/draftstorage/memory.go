package draftstorage

import (
	"bytes"
	"context"
	"sync"
	"time"

	"booking-checkout/internal/infra"
	"booking-checkout/internal/pkg/clock"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory keeps drafts in process. Values live until deleted or, with a positive ttl,
// until the clock passes their expiry.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   clock.Clock
}

func NewMemory(clk clock.Clock, ttl time.Duration) *Memory {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   clk,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, infra.WrapRepoErr("draft not found", nil, infra.KindNotFound)
	}
	if !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, infra.WrapRepoErr("draft expired", nil, infra.KindNotFound)
	}
	return bytes.Clone(e.value), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: bytes.Clone(value)}
	if m.ttl > 0 {
		e.expiresAt = m.clock.Now().Add(m.ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
