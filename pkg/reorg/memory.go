package reorg

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type recordKey struct {
	chain uint64
	id    common.Hash
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]TransferRecord
	reorged map[uint64][]ReorgedTransfer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[recordKey]TransferRecord),
		reorged: make(map[uint64][]ReorgedTransfer),
	}
}

func (s *MemoryStore) GetTransferRecord(_ context.Context, originChain uint64, id common.Hash) (*TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey{originChain, id}]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return copyRecord(rec), nil
}

func (s *MemoryStore) PutTransferRecord(_ context.Context, rec *TransferRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey{rec.OriginChain, rec.TransferID}] = *copyRecord(*rec)
	return nil
}

func (s *MemoryStore) AppendReorgedTransfer(_ context.Context, rt *ReorgedTransfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reorged[rt.OriginChain] = append(s.reorged[rt.OriginChain], *copyReorged(*rt))
	return nil
}

func (s *MemoryStore) ReplaceTransferRecord(_ context.Context, rt *ReorgedTransfer, rec *TransferRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reorged[rt.OriginChain] = append(s.reorged[rt.OriginChain], *copyReorged(*rt))
	s.records[recordKey{rec.OriginChain, rec.TransferID}] = *copyRecord(*rec)
	return nil
}

func (s *MemoryStore) ListReorgedTransfers(_ context.Context, originChain uint64) ([]*ReorgedTransfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.reorged[originChain]
	out := make([]*ReorgedTransfer, 0, len(list))
	for _, rt := range list {
		out = append(out, copyReorged(rt))
	}
	return out, nil
}

func copyRecord(rec TransferRecord) *TransferRecord {
	rec.AmountUSD = cloneInt(rec.AmountUSD)
	return &rec
}

func copyReorged(rt ReorgedTransfer) *ReorgedTransfer {
	rt.AmountUSD = cloneInt(rt.AmountUSD)
	rt.ClawbackNative = cloneInt(rt.ClawbackNative)
	return &rt
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
