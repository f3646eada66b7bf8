// Package cache keeps the last computed standings table between writes.
package cache

import (
	"context"
	"sync"

	"github.com/AdamBeresnev/billiards-league/internal/league"
)

// StandingsCache stores the derived table. A miss is reported as (nil, false, nil).
//
// Every Invalidate advances the generation. A table is stored with the generation
// read before its scan began and Set drops it when an invalidation happened since,
// so a table computed before a write can never replace the invalidated entry.
type StandingsCache interface {
	Get(ctx context.Context) (*league.Table, bool, error)
	Generation(ctx context.Context) (uint64, error)
	Set(ctx context.Context, gen uint64, table *league.Table) (bool, error)
	Invalidate(ctx context.Context) error
}

type Memory struct {
	mu    sync.RWMutex
	gen   uint64
	table *league.Table
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (*league.Table, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.table == nil {
		return nil, false, nil
	}
	t := *m.table
	return &t, true, nil
}

func (m *Memory) Generation(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen, nil
}

func (m *Memory) Set(_ context.Context, gen uint64, table *league.Table) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false, nil
	}
	t := *table
	m.table = &t
	return true, nil
}

func (m *Memory) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.table = nil
	return nil
}

// Noop never holds anything; every read goes to the store.
type Noop struct{}

func (Noop) Get(context.Context) (*league.Table, bool, error)         { return nil, false, nil }
func (Noop) Generation(context.Context) (uint64, error)               { return 0, nil }
func (Noop) Set(context.Context, uint64, *league.Table) (bool, error) { return false, nil }
func (Noop) Invalidate(context.Context) error                         { return nil }

var (
	_ StandingsCache = (*Memory)(nil)
	_ StandingsCache = Noop{}
	_ StandingsCache = (*Redis)(nil)
)
