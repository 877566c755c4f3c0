package bridge

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

// MemoryStore keeps nonces, remote snapshots, pending transfers and the pool in
// process. It is used when no database is configured.
type MemoryStore struct {
	mu        sync.Mutex
	nonces    map[uint64]uint64
	snapshots map[uint64]RemoteSnapshot
	pending   map[common.Hash]risk.PendingTransfer
	pool      *liquidity.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nonces:    make(map[uint64]uint64),
		snapshots: make(map[uint64]RemoteSnapshot),
		pending:   make(map[common.Hash]risk.PendingTransfer),
	}
}

func (m *MemoryStore) IncrementNonce(_ context.Context, chainID uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nonces[chainID]++
	return m.nonces[chainID], nil
}

func (m *MemoryStore) LoadSnapshot(_ context.Context, chainID uint64) (*RemoteSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[chainID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *MemoryStore) SaveSnapshot(_ context.Context, snap *RemoteSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.ChainID] = *snap
	return nil
}

func (m *MemoryStore) LoadPool(_ context.Context) (*liquidity.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool == nil {
		return nil, nil
	}
	s := *m.pool
	return &s, nil
}

func (m *MemoryStore) SavePool(_ context.Context, state liquidity.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pool = &state
	return nil
}

func (m *MemoryStore) ListPending(_ context.Context) ([]risk.PendingTransfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]risk.PendingTransfer, 0, len(m.pending))
	for _, p := range m.pending {
		p.AmountUSD = new(big.Int).Set(p.AmountUSD)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OriginBlock < out[j].OriginBlock
	})
	return out, nil
}

func (m *MemoryStore) SavePending(_ context.Context, p risk.PendingTransfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.AmountUSD = new(big.Int).Set(p.AmountUSD)
	m.pending[p.TransferID] = p
	return nil
}

func (m *MemoryStore) DeletePending(_ context.Context, ids ...common.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.pending, id)
	}
	return nil
}
