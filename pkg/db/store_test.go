package db

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/migrations/bridgedb"
	"github.com/chainsafe/insured-bridge/pkg/pgutil"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

func setupStore(t *testing.T) (context.Context, *Store) {
	t.Helper()

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	migrator := migrate.NewMigrator(db, bridgedb.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err := migrator.Migrate(ctx)
	require.NoError(t, err)

	return ctx, NewStore(db)
}

func bigInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func TestStore_TransferRecords(t *testing.T) {
	ctx, store := setupStore(t)
	id := bridge.TransferID(10, 1)

	_, err := store.GetTransferRecord(ctx, 10, id)
	require.ErrorIs(t, err, reorg.ErrRecordNotFound)

	rec := &reorg.TransferRecord{OriginChain: 10, TransferID: id, AmountUSD: big.NewInt(500), OriginBlock: 42}
	require.NoError(t, store.PutTransferRecord(ctx, rec))

	got, err := store.GetTransferRecord(ctx, 10, id)
	require.NoError(t, err)
	require.Equal(t, "500", got.AmountUSD.String())
	require.Equal(t, uint64(42), got.OriginBlock)
	require.Equal(t, id, got.TransferID)

	// same id on another origin chain is a separate record
	_, err = store.GetTransferRecord(ctx, 11, id)
	require.ErrorIs(t, err, reorg.ErrRecordNotFound)

	rec.AmountUSD = big.NewInt(0)
	rec.OriginBlock = 0
	require.NoError(t, store.PutTransferRecord(ctx, rec))
	got, err = store.GetTransferRecord(ctx, 10, id)
	require.NoError(t, err)
	require.Equal(t, 0, got.AmountUSD.Sign())
}

func TestStore_ReplaceTransferRecord(t *testing.T) {
	ctx, store := setupStore(t)
	id := bridge.TransferID(10, 7)

	require.NoError(t, store.PutTransferRecord(ctx, &reorg.TransferRecord{
		OriginChain: 10, TransferID: id, AmountUSD: big.NewInt(300), OriginBlock: 5,
	}))

	detected := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rt := &reorg.ReorgedTransfer{
		OriginChain:    10,
		TransferID:     id,
		AmountUSD:      big.NewInt(300),
		OriginBlock:    5,
		ClawbackNative: bigInt(t, "150000000000000000"),
		DetectedAt:     detected,
	}
	next := &reorg.TransferRecord{OriginChain: 10, TransferID: id, AmountUSD: big.NewInt(900), OriginBlock: 6}
	require.NoError(t, store.ReplaceTransferRecord(ctx, rt, next))

	got, err := store.GetTransferRecord(ctx, 10, id)
	require.NoError(t, err)
	require.Equal(t, "900", got.AmountUSD.String())
	require.Equal(t, uint64(6), got.OriginBlock)

	require.NoError(t, store.AppendReorgedTransfer(ctx, &reorg.ReorgedTransfer{
		OriginChain: 10, TransferID: id, AmountUSD: big.NewInt(900), OriginBlock: 6,
		ClawbackNative: big.NewInt(1), DetectedAt: detected.Add(time.Minute),
	}))

	list, err := store.ListReorgedTransfers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "300", list[0].AmountUSD.String())
	require.Equal(t, "150000000000000000", list[0].ClawbackNative.String())
	require.True(t, detected.Equal(list[0].DetectedAt))
	require.Equal(t, "900", list[1].AmountUSD.String())

	other, err := store.ListReorgedTransfers(ctx, 11)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestStore_IncrementNonce(t *testing.T) {
	ctx, store := setupStore(t)

	for want := uint64(1); want <= 3; want++ {
		got, err := store.IncrementNonce(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	got, err := store.IncrementNonce(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got)
}

func TestStore_Snapshots(t *testing.T) {
	ctx, store := setupStore(t)

	snap, err := store.LoadSnapshot(ctx, 10)
	require.NoError(t, err)
	require.Nil(t, snap)

	updated := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveSnapshot(ctx, &bridge.RemoteSnapshot{
		ChainID:               10,
		InsuranceFundUSD:      bigInt(t, "20000000000000000000000"),
		AvailableLiquidityUSD: bigInt(t, "5000000000000000000000"),
		OriginBlock:           100,
		UpdatedAt:             updated,
	}))
	require.NoError(t, store.SaveSnapshot(ctx, &bridge.RemoteSnapshot{
		ChainID:               10,
		InsuranceFundUSD:      bigInt(t, "21000000000000000000000"),
		AvailableLiquidityUSD: bigInt(t, "4000000000000000000000"),
		OriginBlock:           101,
		UpdatedAt:             updated.Add(time.Hour),
	}))

	snap, err = store.LoadSnapshot(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Equal(t, uint64(10), snap.ChainID)
	require.Equal(t, "21000000000000000000000", snap.InsuranceFundUSD.String())
	require.Equal(t, "4000000000000000000000", snap.AvailableLiquidityUSD.String())
	require.Equal(t, uint64(101), snap.OriginBlock)
	require.True(t, updated.Add(time.Hour).Equal(snap.UpdatedAt))
}

func TestStore_Balances(t *testing.T) {
	ctx, store := setupStore(t)

	bal, err := store.GetBalance(ctx, "insurance_fund")
	require.NoError(t, err)
	require.Nil(t, bal)

	require.NoError(t, store.SetBalance(ctx, "insurance_fund", big.NewInt(10)))
	require.NoError(t, store.SetBalance(ctx, "insurance_fund", big.NewInt(25)))

	bal, err = store.GetBalance(ctx, "insurance_fund")
	require.NoError(t, err)
	require.Equal(t, "25", bal.String())
}

func TestStore_Pool(t *testing.T) {
	ctx, store := setupStore(t)

	state, err := store.LoadPool(ctx)
	require.NoError(t, err)
	require.Nil(t, state)

	alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob := common.HexToAddress("0x00000000000000000000000000000000000000b2")

	saved := liquidity.State{
		Assets:        bigInt(t, "3000000000000000000"),
		TotalShares:   bigInt(t, "3000000000000000000"),
		TotalFees:     big.NewInt(40),
		FeeIndex:      bigInt(t, "13333333333333333333"),
		Undistributed: big.NewInt(0),
		Positions: []liquidity.Position{
			{User: bob, Shares: bigInt(t, "2000000000000000000"), Baseline: big.NewInt(0), Accrued: big.NewInt(0)},
			{User: alice, Shares: bigInt(t, "1000000000000000000"), Baseline: big.NewInt(7), Accrued: big.NewInt(3)},
		},
	}
	require.NoError(t, store.SavePool(ctx, saved))

	state, err = store.LoadPool(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Equal(t, "3000000000000000000", state.Assets.String())
	require.Equal(t, "40", state.TotalFees.String())
	require.Equal(t, "13333333333333333333", state.FeeIndex.String())
	require.Len(t, state.Positions, 2)
	require.Equal(t, alice, state.Positions[0].User)
	require.Equal(t, "7", state.Positions[0].Baseline.String())
	require.Equal(t, "3", state.Positions[0].Accrued.String())
	require.Equal(t, bob, state.Positions[1].User)

	// a provider who fully withdrew disappears from the next save
	saved.Positions = saved.Positions[:1]
	require.NoError(t, store.SavePool(ctx, saved))
	state, err = store.LoadPool(ctx)
	require.NoError(t, err)
	require.Len(t, state.Positions, 1)
	require.Equal(t, bob, state.Positions[0].User)
	require.Equal(t, "2000000000000000000", state.Positions[0].Shares.String())
}

func TestStore_PendingTransfers(t *testing.T) {
	ctx, store := setupStore(t)

	pending, err := store.ListPending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	first := risk.PendingTransfer{TransferID: bridge.TransferID(1, 1), AmountUSD: bigInt(t, "17982000000000000000000"), OriginBlock: 120}
	second := risk.PendingTransfer{TransferID: bridge.TransferID(1, 2), AmountUSD: big.NewInt(7), OriginBlock: 100}
	require.NoError(t, store.SavePending(ctx, first))
	require.NoError(t, store.SavePending(ctx, second))
	require.NoError(t, store.SavePending(ctx, second))

	pending, err = store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, second.TransferID, pending[0].TransferID)
	require.Equal(t, first.TransferID, pending[1].TransferID)
	require.Equal(t, "17982000000000000000000", pending[1].AmountUSD.String())
	require.Equal(t, uint64(120), pending[1].OriginBlock)

	require.NoError(t, store.DeletePending(ctx, second.TransferID, common.HexToHash("0x99")))
	require.NoError(t, store.DeletePending(ctx))

	pending, err = store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, first.TransferID, pending[0].TransferID)
}
