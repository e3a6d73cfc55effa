package journal

import (
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store. It backs CSV-loaded journals, the demo
// and tests.
type Memory struct {
	mu     sync.RWMutex
	trades map[string]Trade
}

func NewMemory(trades ...Trade) *Memory {
	m := &Memory{trades: make(map[string]Trade, len(trades))}
	for _, t := range trades {
		m.trades[t.ID] = t
	}
	return m
}

func (m *Memory) RecordTrade(t Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades[t.ID] = t
	return nil
}

func (m *Memory) GetTrade(tradeID string) (Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trades[tradeID]
	if !ok {
		return Trade{}, notFound(tradeID)
	}
	return t, nil
}

func (m *Memory) DeleteTrade(tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trades[tradeID]; !ok {
		return notFound(tradeID)
	}
	delete(m.trades, tradeID)
	return nil
}

func (m *Memory) ListTrades() ([]Trade, error) {
	return m.list(func(Trade) bool { return true }), nil
}

func (m *Memory) ListTradesEnteredBetween(start, end time.Time) ([]Trade, error) {
	return m.list(func(t Trade) bool {
		return !t.EntryTime.Before(start) && t.EntryTime.Before(end)
	}), nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) list(keep func(Trade) bool) []Trade {
	m.mu.RLock()
	out := make([]Trade, 0, len(m.trades))
	for _, t := range m.trades {
		if keep(t) {
			out = append(out, t)
		}
	}
	m.mu.RUnlock()

	SortByEntry(out)
	return out
}

// SortByEntry orders trades by entry time, then id.
func SortByEntry(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].EntryTime.Equal(trades[j].EntryTime) {
			return trades[i].EntryTime.Before(trades[j].EntryTime)
		}
		return trades[i].ID < trades[j].ID
	})
}
