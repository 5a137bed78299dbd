package storage

import (
	"context"
	"sync"

	"pulseledger/internal/core"
)

// MemoryGateway keeps the transaction set in process memory. Data is
// lost on exit; useful for tests and ephemeral sessions.
type MemoryGateway struct {
	mu    sync.Mutex
	items []core.Transaction
	saves int
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load(_ context.Context) ([]core.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]core.Transaction(nil), g.items...), nil
}

func (g *MemoryGateway) Save(_ context.Context, items []core.Transaction) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = append([]core.Transaction(nil), items...)
	g.saves++
	return nil
}

// SaveCount reports how many saves have completed.
func (g *MemoryGateway) SaveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}
