package pricefeed

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Static is an oracle with an operator configured price.
type Static struct {
	mu    sync.RWMutex
	price decimal.Decimal
	valid bool
}

func NewStatic(price decimal.Decimal) *Static {
	return &Static{price: price, valid: true}
}

func (s *Static) LatestPrice(_ context.Context) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.price, s.valid, nil
}

// Set replaces the price and marks it valid.
func (s *Static) Set(price decimal.Decimal) {
	s.mu.Lock()
	s.price = price
	s.valid = true
	s.mu.Unlock()
}

// Invalidate makes the oracle report an unusable price until the next Set.
func (s *Static) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}
