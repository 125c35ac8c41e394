package ledger

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-wide in-memory Ledger. Spend does not survive a
// restart; use the SQLite ledger where that matters.
type Memory struct {
	mu       sync.Mutex
	monthKey string
	spentUSD float64
}

var _ Ledger = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

// rollover resets the accumulator when now falls in a different month than
// the stored key. Callers must hold mu: the check and the reset are one
// critical section so two concurrent requests cannot double-reset.
func (m *Memory) rollover(now time.Time) {
	if key := Key(now); m.monthKey != key {
		m.monthKey = key
		m.spentUSD = 0
	}
}

func (m *Memory) Current(_ context.Context, now time.Time) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rollover(now)
	return Snapshot{MonthKey: m.monthKey, SpentUSD: m.spentUSD}, nil
}

func (m *Memory) Commit(_ context.Context, now time.Time, deltaUSD float64) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rollover(now)
	m.spentUSD += deltaUSD
	return Snapshot{MonthKey: m.monthKey, SpentUSD: m.spentUSD}, nil
}
