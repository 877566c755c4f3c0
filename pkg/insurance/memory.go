package insurance

import (
	"context"
	"math/big"
	"sync"
)

// MemoryBalanceStore keeps balances in process.
type MemoryBalanceStore struct {
	mu       sync.RWMutex
	balances map[string]*big.Int
}

func NewMemoryBalanceStore() *MemoryBalanceStore {
	return &MemoryBalanceStore{balances: make(map[string]*big.Int)}
}

func (s *MemoryBalanceStore) GetBalance(_ context.Context, account string) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[account]
	if !ok {
		return nil, nil
	}
	return new(big.Int).Set(b), nil
}

func (s *MemoryBalanceStore) SetBalance(_ context.Context, account string, balance *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[account] = new(big.Int).Set(balance)
	return nil
}
