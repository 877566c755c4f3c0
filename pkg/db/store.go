// Package db is the PostgreSQL persistence of the bridge: transfer records, the reorg
// log, nonces, remote snapshots, balances and the liquidity pool.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/uptrace/bun"

	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/db/dao"
	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

// Store provides database operations for the bridge
type Store struct {
	db *bun.DB
}

// NewStore creates a new postgres store
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Stores returns the store wired into every durable slot of the service
func (s *Store) Stores() bridge.Stores {
	return bridge.Stores{Ledger: s, Nonces: s, Snapshots: s, Pool: s, Pending: s}
}

func (s *Store) GetTransferRecord(ctx context.Context, originChain uint64, id common.Hash) (*reorg.TransferRecord, error) {
	d := new(dao.TransferRecordDao)
	err := s.db.NewSelect().
		Model(d).
		Where("origin_chain = ?", chainKey(originChain)).
		Where("transfer_id = ?", id.Hex()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reorg.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get transfer record: %w", err)
	}
	return toTransferRecord(d)
}

func (s *Store) PutTransferRecord(ctx context.Context, rec *reorg.TransferRecord) error {
	return putTransferRecord(ctx, s.db, rec)
}

func (s *Store) AppendReorgedTransfer(ctx context.Context, rt *reorg.ReorgedTransfer) error {
	return appendReorgedTransfer(ctx, s.db, rt)
}

// ReplaceTransferRecord logs rt and overwrites the record in one transaction
func (s *Store) ReplaceTransferRecord(ctx context.Context, rt *reorg.ReorgedTransfer, rec *reorg.TransferRecord) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := appendReorgedTransfer(ctx, tx, rt); err != nil {
			return err
		}
		return putTransferRecord(ctx, tx, rec)
	})
}

func (s *Store) ListReorgedTransfers(ctx context.Context, originChain uint64) ([]*reorg.ReorgedTransfer, error) {
	var daos []dao.ReorgedTransferDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("origin_chain = ?", chainKey(originChain)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reorged transfers: %w", err)
	}
	out := make([]*reorg.ReorgedTransfer, 0, len(daos))
	for i := range daos {
		rt, err := toReorgedTransfer(&daos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, nil
}

// IncrementNonce allocates the next nonce for chainID. The first nonce is 1.
func (s *Store) IncrementNonce(ctx context.Context, chainID uint64) (uint64, error) {
	var nonce int64
	err := s.db.NewInsert().
		Model(&dao.NonceStateDao{ChainID: chainKey(chainID), Nonce: 1}).
		On("CONFLICT (chain_id) DO UPDATE").
		Set("nonce = ns.nonce + 1").
		Set("updated_at = current_timestamp").
		Returning("nonce").
		Scan(ctx, &nonce)
	if err != nil {
		return 0, fmt.Errorf("failed to increment nonce: %w", err)
	}
	return uint64(nonce), nil
}

func (s *Store) LoadSnapshot(ctx context.Context, chainID uint64) (*bridge.RemoteSnapshot, error) {
	d := new(dao.ChainStateDao)
	err := s.db.NewSelect().
		Model(d).
		Where("chain_id = ?", chainKey(chainID)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chain state: %w", err)
	}
	return toRemoteSnapshot(d)
}

func (s *Store) SaveSnapshot(ctx context.Context, snap *bridge.RemoteSnapshot) error {
	_, err := s.db.NewInsert().
		Model(toChainStateDao(snap)).
		On("CONFLICT (chain_id) DO UPDATE").
		Set("insurance_fund_usd = EXCLUDED.insurance_fund_usd").
		Set("available_liquidity_usd = EXCLUDED.available_liquidity_usd").
		Set("origin_block = EXCLUDED.origin_block").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save chain state: %w", err)
	}
	return nil
}

// GetBalance returns nil if the account has no stored balance
func (s *Store) GetBalance(ctx context.Context, account string) (*big.Int, error) {
	d := new(dao.BridgeBalanceDao)
	err := s.db.NewSelect().
		Model(d).
		Where("account = ?", account).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return parseNumeric(d.Balance)
}

func (s *Store) SetBalance(ctx context.Context, account string, balance *big.Int) error {
	return setBalance(ctx, s.db, account, balance)
}

// LoadPool returns nil if the pool was never saved
func (s *Store) LoadPool(ctx context.Context) (*liquidity.State, error) {
	var balances []dao.BridgeBalanceDao
	err := s.db.NewSelect().
		Model(&balances).
		Where("account IN (?)", bun.In(poolAccounts)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool totals: %w", err)
	}
	if len(balances) == 0 {
		return nil, nil
	}

	totals := make(map[string]*big.Int, len(balances))
	for _, b := range balances {
		v, err := parseNumeric(b.Balance)
		if err != nil {
			return nil, err
		}
		totals[b.Account] = v
	}
	for _, account := range poolAccounts {
		if totals[account] == nil {
			return nil, fmt.Errorf("pool total %s is missing", account)
		}
	}

	var daos []dao.PoolPositionDao
	if err := s.db.NewSelect().Model(&daos).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load pool positions: %w", err)
	}
	positions := make([]liquidity.Position, 0, len(daos))
	for i := range daos {
		p, err := toPosition(&daos[i])
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].User.Cmp(positions[j].User) < 0
	})

	return &liquidity.State{
		Assets:        totals[poolAssets],
		TotalShares:   totals[poolTotalShares],
		TotalFees:     totals[poolTotalFees],
		FeeIndex:      totals[poolFeeIndex],
		Undistributed: totals[poolUndistributed],
		Positions:     positions,
	}, nil
}

// SavePool replaces the stored pool with state in one transaction
func (s *Store) SavePool(ctx context.Context, state liquidity.State) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		totals := map[string]*big.Int{
			poolAssets:        state.Assets,
			poolTotalShares:   state.TotalShares,
			poolTotalFees:     state.TotalFees,
			poolFeeIndex:      state.FeeIndex,
			poolUndistributed: state.Undistributed,
		}
		for _, account := range poolAccounts {
			if err := setBalance(ctx, tx, account, totals[account]); err != nil {
				return err
			}
		}

		if _, err := tx.NewDelete().
			Model((*dao.PoolPositionDao)(nil)).
			Where("1=1").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear pool positions: %w", err)
		}
		if len(state.Positions) == 0 {
			return nil
		}

		daos := make([]*dao.PoolPositionDao, 0, len(state.Positions))
		for i := range state.Positions {
			daos = append(daos, toPoolPositionDao(&state.Positions[i]))
		}
		if _, err := tx.NewInsert().Model(&daos).Exec(ctx); err != nil {
			return fmt.Errorf("failed to save pool positions: %w", err)
		}
		return nil
	})
}

// ListPending returns the admitted transfers that have not reached finality
func (s *Store) ListPending(ctx context.Context) ([]risk.PendingTransfer, error) {
	var daos []dao.PendingTransferDao
	err := s.db.NewSelect().
		Model(&daos).
		Order("origin_block ASC", "transfer_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transfers: %w", err)
	}
	out := make([]risk.PendingTransfer, 0, len(daos))
	for i := range daos {
		p, err := toPendingTransfer(&daos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *Store) SavePending(ctx context.Context, p risk.PendingTransfer) error {
	_, err := s.db.NewInsert().
		Model(toPendingTransferDao(&p)).
		On("CONFLICT (transfer_id) DO UPDATE").
		Set("amount_usd = EXCLUDED.amount_usd").
		Set("origin_block = EXCLUDED.origin_block").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save pending transfer: %w", err)
	}
	return nil
}

func (s *Store) DeletePending(ctx context.Context, ids ...common.Hash) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.Hex())
	}
	_, err := s.db.NewDelete().
		Model((*dao.PendingTransferDao)(nil)).
		Where("transfer_id IN (?)", bun.In(keys)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete pending transfers: %w", err)
	}
	return nil
}

func putTransferRecord(ctx context.Context, db bun.IDB, rec *reorg.TransferRecord) error {
	_, err := db.NewInsert().
		Model(toTransferRecordDao(rec)).
		On("CONFLICT (origin_chain, transfer_id) DO UPDATE").
		Set("amount_usd = EXCLUDED.amount_usd").
		Set("origin_block = EXCLUDED.origin_block").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to store transfer record: %w", err)
	}
	return nil
}

func appendReorgedTransfer(ctx context.Context, db bun.IDB, rt *reorg.ReorgedTransfer) error {
	if _, err := db.NewInsert().Model(toReorgedTransferDao(rt)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to append reorged transfer: %w", err)
	}
	return nil
}

func setBalance(ctx context.Context, db bun.IDB, account string, balance *big.Int) error {
	_, err := db.NewInsert().
		Model(&dao.BridgeBalanceDao{Account: account, Balance: numeric(balance)}).
		On("CONFLICT (account) DO UPDATE").
		Set("balance = EXCLUDED.balance").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set balance %s: %w", account, err)
	}
	return nil
}
