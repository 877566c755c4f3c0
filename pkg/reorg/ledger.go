package reorg

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/chainsafe/insured-bridge/internal/metrics"
	"github.com/chainsafe/insured-bridge/pkg/pricefeed"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Liquidator is the insurance fund side of a clawback. Deposit returns a clawback
// whose ledger update could not be written.
type Liquidator interface {
	LiquidateForReorg(ctx context.Context, amount *big.Int) error
	Deposit(ctx context.Context, amount *big.Int) (*big.Int, error)
}

// PoolCreditor receives liquidated insurance funds.
type PoolCreditor interface {
	Credit(amount *big.Int)
}

// Ledger detects conflicting transfer ids and performs clawbacks.
type Ledger struct {
	store  Store
	fund   Liquidator
	pool   PoolCreditor
	logger *zap.Logger
	now    func() time.Time
}

func NewLedger(store Store, fund Liquidator, pool PoolCreditor, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:  store,
		fund:   fund,
		pool:   pool,
		logger: logger,
		now:    time.Now,
	}
}

// Conflict returns the stored record if recording id again would trigger a clawback.
// Only id equality and a non-zero stored amount matter.
func (l *Ledger) Conflict(ctx context.Context, originChain uint64, id common.Hash) (*TransferRecord, error) {
	rec, err := l.store.GetTransferRecord(ctx, originChain, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer record: %w", err)
	}
	if rec.AmountUSD == nil || rec.AmountUSD.Sign() == 0 {
		return nil, nil
	}
	return rec, nil
}

// RecordInbound stores an inbound transfer. On conflict the old record's USD value is
// liquidated from the insurance fund at quote and logged as a ReorgedTransfer while
// the record is overwritten; only then is the pool credited. A liquidation failure
// leaves the ledger untouched and returns a *ReconciliationError. If the ledger write
// fails the clawback is returned to the fund, so a redelivery claws back exactly once.
func (l *Ledger) RecordInbound(
	ctx context.Context,
	quote pricefeed.Quote,
	originChain uint64,
	id common.Hash,
	amountUSD *big.Int,
	originBlock uint64,
) (*ReorgedTransfer, error) {
	rec := &TransferRecord{
		OriginChain: originChain,
		TransferID:  id,
		AmountUSD:   new(big.Int).Set(amountUSD),
		OriginBlock: originBlock,
	}

	prev, err := l.Conflict(ctx, originChain, id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		if err := l.store.PutTransferRecord(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to store transfer record: %w", err)
		}
		return nil, nil
	}

	clawback := quote.ToNative(prev.AmountUSD)
	metrics.ReorgsDetected.WithLabelValues(strconv.FormatUint(originChain, 10)).Inc()
	l.logger.Warn("conflicting transfer id, origin chain reorganized",
		zap.Uint64("origin_chain", originChain),
		zap.String("transfer_id", id.Hex()),
		zap.Stringer("old_amount_usd", prev.AmountUSD),
		zap.Uint64("old_origin_block", prev.OriginBlock),
		zap.Stringer("new_amount_usd", amountUSD),
		zap.Uint64("new_origin_block", originBlock),
		zap.Stringer("clawback_wei", clawback))

	if err := l.fund.LiquidateForReorg(ctx, clawback); err != nil {
		metrics.Clawbacks.WithLabelValues("shortfall").Inc()
		return nil, &ReconciliationError{
			OriginChain: originChain,
			TransferID:  id,
			Required:    clawback,
			Err:         err,
		}
	}
	reorged := &ReorgedTransfer{
		OriginChain:    prev.OriginChain,
		TransferID:     prev.TransferID,
		AmountUSD:      prev.AmountUSD,
		OriginBlock:    prev.OriginBlock,
		ClawbackNative: clawback,
		DetectedAt:     l.now().UTC(),
	}
	if err := l.store.ReplaceTransferRecord(ctx, reorged, rec); err != nil {
		return nil, l.refund(ctx, originChain, id, clawback, err)
	}
	l.pool.Credit(clawback)
	metrics.Clawbacks.WithLabelValues("success").Inc()
	return reorged, nil
}

// refund reverses a liquidation whose ledger update failed. A failed refund leaves
// the fund short with the record unchanged and is reported as a reconciliation error.
func (l *Ledger) refund(ctx context.Context, originChain uint64, id common.Hash, clawback *big.Int, cause error) error {
	l.logger.Error("ledger update failed after clawback, refunding insurance fund",
		zap.String("transfer_id", id.Hex()),
		zap.Stringer("clawback_wei", clawback),
		zap.Error(cause))
	metrics.Clawbacks.WithLabelValues("refunded").Inc()
	if clawback.Sign() == 0 {
		return fmt.Errorf("failed to record reorged transfer: %w", cause)
	}
	if _, err := l.fund.Deposit(ctx, clawback); err != nil {
		l.logger.Error("insurance fund refund failed",
			zap.String("transfer_id", id.Hex()),
			zap.Error(err))
		return &ReconciliationError{
			OriginChain: originChain,
			TransferID:  id,
			Required:    clawback,
			Err:         fmt.Errorf("record update failed (%v) and refund failed: %w", cause, err),
		}
	}
	return fmt.Errorf("failed to record reorged transfer: %w", cause)
}

// Forget zeroes the record of a delivery whose payout failed so that redelivering
// it is not mistaken for a reorg. Any reorg already logged for the id is kept.
func (l *Ledger) Forget(ctx context.Context, originChain uint64, id common.Hash) error {
	return l.store.PutTransferRecord(ctx, &TransferRecord{
		OriginChain: originChain,
		TransferID:  id,
		AmountUSD:   new(big.Int),
	})
}

// ReorgedTransfers returns the audit trail for originChain in detection order.
func (l *Ledger) ReorgedTransfers(ctx context.Context, originChain uint64) ([]*ReorgedTransfer, error) {
	return l.store.ListReorgedTransfers(ctx, originChain)
}
