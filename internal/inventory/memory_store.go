package inventory

import (
	"context"
	"sync"
)

// MemoryStore implements StockStore with in-memory storage
type MemoryStore struct {
	mu     sync.RWMutex
	stocks map[int64]int32
}

// NewMemoryStore creates a new in-memory stock store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stocks: make(map[int64]int32),
	}
}

func (s *MemoryStore) CurrentStock(_ context.Context, productID int64) (int32, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qty, exists := s.stocks[productID]
	return qty, exists, nil
}

func (s *MemoryStore) SetStock(_ context.Context, productID int64, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stocks[productID] = quantity
	return nil
}

// Deduct subtracts committed quantities. An unknown product or a
// deduction past zero is recorded as an overcommit; stock is clamped
// at zero so later reads stay sane.
func (s *MemoryStore) Deduct(_ context.Context, deductions map[int64]int32) ([]Overcommit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var overcommits []Overcommit
	for productID, qty := range deductions {
		current, exists := s.stocks[productID]
		if !exists {
			overcommits = append(overcommits, Overcommit{ProductID: productID, Available: -qty})
			continue
		}
		remaining := current - qty
		if remaining < 0 {
			overcommits = append(overcommits, Overcommit{ProductID: productID, Available: remaining})
			remaining = 0
		}
		s.stocks[productID] = remaining
	}
	return overcommits, nil
}
