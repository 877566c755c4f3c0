// Package reorg keeps the durable record of inbound transfers per origin chain and
// recovers losses from the insurance fund when an origin chain reorganizes.
package reorg

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientInsuranceFunds = errors.New("insufficient insurance funds")
	ErrRecordNotFound             = errors.New("transfer record not found")
)

// TransferRecord is the last inbound transfer seen for an id on an origin chain.
type TransferRecord struct {
	OriginChain uint64
	TransferID  common.Hash
	AmountUSD   *big.Int
	OriginBlock uint64
}

// ReorgedTransfer captures a record that was replaced by a conflicting delivery.
type ReorgedTransfer struct {
	OriginChain    uint64
	TransferID     common.Hash
	AmountUSD      *big.Int
	OriginBlock    uint64
	ClawbackNative *big.Int
	DetectedAt     time.Time
}

// Store is the durable arena of transfer records and the append-only reorg log.
type Store interface {
	// GetTransferRecord returns ErrRecordNotFound if nothing was recorded.
	GetTransferRecord(ctx context.Context, originChain uint64, id common.Hash) (*TransferRecord, error)
	PutTransferRecord(ctx context.Context, rec *TransferRecord) error
	AppendReorgedTransfer(ctx context.Context, rt *ReorgedTransfer) error
	// ReplaceTransferRecord appends rt and overwrites the record in one step.
	ReplaceTransferRecord(ctx context.Context, rt *ReorgedTransfer, rec *TransferRecord) error
	ListReorgedTransfers(ctx context.Context, originChain uint64) ([]*ReorgedTransfer, error)
}

// ReconciliationError reports a clawback the insurance fund could not cover.
type ReconciliationError struct {
	OriginChain uint64
	TransferID  common.Hash
	Required    *big.Int
	Err         error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reorg clawback of %s wei for transfer %s from chain %d failed: %v",
		e.Required, e.TransferID.Hex(), e.OriginChain, e.Err)
}

func (e *ReconciliationError) Unwrap() []error {
	return []error{ErrInsufficientInsuranceFunds, e.Err}
}
