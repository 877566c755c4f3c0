package db

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/db/dao"
	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

// Balance rows holding the pool totals. The insurance fund uses insurance.Account.
const (
	poolAssets        = "pool_assets"
	poolTotalShares   = "pool_total_shares"
	poolTotalFees     = "pool_total_fees"
	poolFeeIndex      = "pool_fee_index"
	poolUndistributed = "pool_undistributed"
)

var poolAccounts = []string{poolAssets, poolTotalShares, poolTotalFees, poolFeeIndex, poolUndistributed}

func chainKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func parseChain(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	return id, nil
}

func numeric(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseNumeric(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid numeric value %q", s)
	}
	return v, nil
}

func toTransferRecordDao(rec *reorg.TransferRecord) *dao.TransferRecordDao {
	return &dao.TransferRecordDao{
		OriginChain: chainKey(rec.OriginChain),
		TransferID:  rec.TransferID.Hex(),
		AmountUSD:   numeric(rec.AmountUSD),
		OriginBlock: int64(rec.OriginBlock),
	}
}

func toTransferRecord(d *dao.TransferRecordDao) (*reorg.TransferRecord, error) {
	origin, err := parseChain(d.OriginChain)
	if err != nil {
		return nil, err
	}
	amount, err := parseNumeric(d.AmountUSD)
	if err != nil {
		return nil, err
	}
	return &reorg.TransferRecord{
		OriginChain: origin,
		TransferID:  common.HexToHash(d.TransferID),
		AmountUSD:   amount,
		OriginBlock: uint64(d.OriginBlock),
	}, nil
}

func toReorgedTransferDao(rt *reorg.ReorgedTransfer) *dao.ReorgedTransferDao {
	return &dao.ReorgedTransferDao{
		OriginChain:    chainKey(rt.OriginChain),
		TransferID:     rt.TransferID.Hex(),
		AmountUSD:      numeric(rt.AmountUSD),
		OriginBlock:    int64(rt.OriginBlock),
		ClawbackNative: numeric(rt.ClawbackNative),
		DetectedAt:     rt.DetectedAt,
	}
}

func toReorgedTransfer(d *dao.ReorgedTransferDao) (*reorg.ReorgedTransfer, error) {
	origin, err := parseChain(d.OriginChain)
	if err != nil {
		return nil, err
	}
	amount, err := parseNumeric(d.AmountUSD)
	if err != nil {
		return nil, err
	}
	clawback, err := parseNumeric(d.ClawbackNative)
	if err != nil {
		return nil, err
	}
	return &reorg.ReorgedTransfer{
		OriginChain:    origin,
		TransferID:     common.HexToHash(d.TransferID),
		AmountUSD:      amount,
		OriginBlock:    uint64(d.OriginBlock),
		ClawbackNative: clawback,
		DetectedAt:     d.DetectedAt.UTC(),
	}, nil
}

func toChainStateDao(snap *bridge.RemoteSnapshot) *dao.ChainStateDao {
	return &dao.ChainStateDao{
		ChainID:               chainKey(snap.ChainID),
		InsuranceFundUSD:      numeric(snap.InsuranceFundUSD),
		AvailableLiquidityUSD: numeric(snap.AvailableLiquidityUSD),
		OriginBlock:           int64(snap.OriginBlock),
		UpdatedAt:             snap.UpdatedAt,
	}
}

func toRemoteSnapshot(d *dao.ChainStateDao) (*bridge.RemoteSnapshot, error) {
	chainID, err := parseChain(d.ChainID)
	if err != nil {
		return nil, err
	}
	insurance, err := parseNumeric(d.InsuranceFundUSD)
	if err != nil {
		return nil, err
	}
	liquidityUSD, err := parseNumeric(d.AvailableLiquidityUSD)
	if err != nil {
		return nil, err
	}
	return &bridge.RemoteSnapshot{
		ChainID:               chainID,
		InsuranceFundUSD:      insurance,
		AvailableLiquidityUSD: liquidityUSD,
		OriginBlock:           uint64(d.OriginBlock),
		UpdatedAt:             d.UpdatedAt.UTC(),
	}, nil
}

func toPoolPositionDao(p *liquidity.Position) *dao.PoolPositionDao {
	return &dao.PoolPositionDao{
		Provider: p.User.Hex(),
		Shares:   numeric(p.Shares),
		Baseline: numeric(p.Baseline),
		Accrued:  numeric(p.Accrued),
	}
}

func toPosition(d *dao.PoolPositionDao) (liquidity.Position, error) {
	shares, err := parseNumeric(d.Shares)
	if err != nil {
		return liquidity.Position{}, err
	}
	baseline, err := parseNumeric(d.Baseline)
	if err != nil {
		return liquidity.Position{}, err
	}
	accrued, err := parseNumeric(d.Accrued)
	if err != nil {
		return liquidity.Position{}, err
	}
	return liquidity.Position{
		User:     common.HexToAddress(d.Provider),
		Shares:   shares,
		Baseline: baseline,
		Accrued:  accrued,
	}, nil
}

func toPendingTransferDao(p *risk.PendingTransfer) *dao.PendingTransferDao {
	return &dao.PendingTransferDao{
		TransferID:  p.TransferID.Hex(),
		AmountUSD:   numeric(p.AmountUSD),
		OriginBlock: int64(p.OriginBlock),
	}
}

func toPendingTransfer(d *dao.PendingTransferDao) (*risk.PendingTransfer, error) {
	amount, err := parseNumeric(d.AmountUSD)
	if err != nil {
		return nil, err
	}
	return &risk.PendingTransfer{
		TransferID:  common.HexToHash(d.TransferID),
		AmountUSD:   amount,
		OriginBlock: uint64(d.OriginBlock),
	}, nil
}
