// Package bridge sequences outbound and inbound transfers across the pricing, risk,
// liquidity and reorg components.
package bridge

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

var (
	ErrZeroAmount         = errors.New("amount must be greater than zero")
	ErrInvalidRecipient   = errors.New("invalid recipient")
	ErrUnknownDestination = errors.New("unknown destination chain")
	ErrUnknownOrigin      = errors.New("unknown origin chain")
	ErrDispatchFailed     = errors.New("message dispatch failed")
	ErrPayoutFailed       = errors.New("payout failed")
)

// TransferRequest is an outbound transfer of native value.
type TransferRequest struct {
	Sender      common.Address
	Destination uint64
	Recipient   common.Address
	Amount      *big.Int
	Metadata    []byte
}

// TransferReceipt describes an admitted and dispatched outbound transfer.
type TransferReceipt struct {
	MessageID   string
	TransferID  common.Hash
	Amount      *big.Int
	Fee         *big.Int
	Bridged     *big.Int
	AmountUSD   *big.Int
	OriginBlock uint64
}

// RemoteSnapshot is the counterpart chain's risk view as of its last message.
type RemoteSnapshot struct {
	ChainID               uint64
	InsuranceFundUSD      *big.Int
	AvailableLiquidityUSD *big.Int
	OriginBlock           uint64
	UpdatedAt             time.Time
}

// PoolStatus summarizes the liquidity pool.
type PoolStatus struct {
	Assets             *big.Int
	AvailableLiquidity *big.Int
	TotalShares        *big.Int
	TotalFees          *big.Int
	FeeIndex           *big.Int
}

// Status is the operator view of the bridge.
type Status struct {
	LocalChainID            uint64
	RemoteChainID           uint64
	Halted                  bool
	HaltReason              string
	Price                   string
	PriceError              string
	PendingTransfers        int
	PendingBridgeAmountUSD  *big.Int
	SafeBridgeableAmountUSD *big.Int
	InsuranceFundBalance    *big.Int
	InsuranceFundUSD        *big.Int
	Pool                    PoolStatus
	Remote                  *RemoteSnapshot
}

// Position is one liquidity provider's stake.
type Position struct {
	Provider    common.Address
	Shares      *big.Int
	PendingFees *big.Int
}

// Dispatcher sends payloads to the counterpart bridge.
//
//go:generate mockery --name Dispatcher --output mocks --outpkg mocks --filename mock_dispatcher.go --with-expecter
type Dispatcher interface {
	Dispatch(ctx context.Context, destination uint64, value *big.Int, payload, hookMetadata []byte) (string, error)
}

// InsuranceFund backs instant settlement.
type InsuranceFund interface {
	Balance(ctx context.Context) (*big.Int, error)
	LiquidateForReorg(ctx context.Context, amount *big.Int) error
	DepositFee(ctx context.Context, amount *big.Int) error
	Deposit(ctx context.Context, amount *big.Int) (*big.Int, error)
}

// BlockSource reports the local chain head.
//
//go:generate mockery --name BlockSource --output mocks --outpkg mocks --filename mock_block_source.go --with-expecter
type BlockSource interface {
	CurrentBlock(ctx context.Context) (uint64, error)
}

// Payer moves native value out of custody.
//
//go:generate mockery --name Payer --output mocks --outpkg mocks --filename mock_payer.go --with-expecter
type Payer interface {
	Pay(ctx context.Context, recipient common.Address, amount *big.Int) error
}

// NonceStore allocates outbound transfer nonces.
type NonceStore interface {
	IncrementNonce(ctx context.Context, chainID uint64) (uint64, error)
}

// SnapshotStore persists the last RemoteSnapshot per chain.
type SnapshotStore interface {
	// LoadSnapshot returns nil if no snapshot was stored.
	LoadSnapshot(ctx context.Context, chainID uint64) (*RemoteSnapshot, error)
	SaveSnapshot(ctx context.Context, snap *RemoteSnapshot) error
}

// PoolStore persists the liquidity pool.
type PoolStore interface {
	// LoadPool returns nil if no pool was stored.
	LoadPool(ctx context.Context) (*liquidity.State, error)
	SavePool(ctx context.Context, state liquidity.State) error
}

// PendingStore persists admitted outbound transfers until they reach finality.
type PendingStore interface {
	ListPending(ctx context.Context) ([]risk.PendingTransfer, error)
	SavePending(ctx context.Context, p risk.PendingTransfer) error
	DeletePending(ctx context.Context, ids ...common.Hash) error
}

// Stores groups the durable state used by the service.
type Stores struct {
	Ledger    reorg.Store
	Nonces    NonceStore
	Snapshots SnapshotStore
	Pool      PoolStore
	Pending   PendingStore
}

// TransferID derives the id of an outbound transfer as
// keccak256(uint256(chainID) || uint256(nonce)).
func TransferID(chainID, nonce uint64) common.Hash {
	c := uint256.NewInt(chainID).Bytes32()
	n := uint256.NewInt(nonce).Bytes32()
	return crypto.Keccak256Hash(c[:], n[:])
}
