package stock

import (
	"sync"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type entry struct {
	mu        sync.Mutex
	available int
	active    bool
}

// MemoryLedger implements Ledger with in-memory storage. The outer RWMutex
// only guards the map; each product carries its own lock, so concurrent
// reservations for different products never serialize on each other.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		entries: make(map[int64]*entry),
	}
}

func (l *MemoryLedger) lookup(productID int64) *entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[productID]
}

func (l *MemoryLedger) CheckAvailable(productID int64, qty int) bool {
	e := l.lookup(productID)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active && e.available >= qty
}

func (l *MemoryLedger) Reserve(productID int64, qty int) error {
	e := l.lookup(productID)
	if e == nil {
		return domain.ErrProductNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return &domain.InsufficientStockError{ProductID: productID, Available: 0}
	}
	if e.available < qty {
		return &domain.InsufficientStockError{ProductID: productID, Available: e.available}
	}

	e.available -= qty
	return nil
}

func (l *MemoryLedger) Release(productID int64, qty int) error {
	e := l.lookup(productID)
	if e == nil {
		return domain.ErrProductNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.available += qty
	return nil
}

func (l *MemoryLedger) SetStock(productID int64, qty int, active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, exists := l.entries[productID]; exists {
		e.mu.Lock()
		e.available = qty
		e.active = active
		e.mu.Unlock()
		return
	}
	l.entries[productID] = &entry{available: qty, active: active}
}

func (l *MemoryLedger) Available(productID int64) int {
	e := l.lookup(productID)
	if e == nil {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.available
}
