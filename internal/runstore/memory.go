package runstore

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*Memory)(nil)

// Memory keeps runs in process. Used when no database path is configured,
// in test mode, and as the fake in tests.
type Memory struct {
	mu   sync.RWMutex
	runs []Run
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Previous(ctx context.Context) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.runs) == 0 {
		return nil, nil
	}
	r := m.runs[len(m.runs)-1]
	return &r, nil
}

func (m *Memory) Save(ctx context.Context, r *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, *r)
	return nil
}

func (m *Memory) Recent(ctx context.Context, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	out := make([]Run, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}
