// Package insurance holds the native balance that backs instant settlement and pays
// reorg clawbacks.
package insurance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/pkg/reorg"
)

// ErrInvalidAmount is returned for nil or non-positive amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// BalanceStore persists the fund balance.
//
//go:generate mockery --name BalanceStore --output mocks --outpkg mocks --filename mock_balance_store.go --with-expecter
type BalanceStore interface {
	// GetBalance returns nil if no balance was ever stored.
	GetBalance(ctx context.Context, account string) (*big.Int, error)
	SetBalance(ctx context.Context, account string, balance *big.Int) error
}

// Account is the balance key used for the fund.
const Account = "insurance_fund"

// Fund is the insurance fund. Fee deposits and capital top-ups add to the balance,
// clawbacks remove from it.
type Fund struct {
	mu      sync.Mutex
	store   BalanceStore
	logger  *zap.Logger
	balance *big.Int
}

// NewFund loads the stored balance.
func NewFund(ctx context.Context, store BalanceStore, logger *zap.Logger) (*Fund, error) {
	balance, err := store.GetBalance(ctx, Account)
	if err != nil {
		return nil, fmt.Errorf("failed to load insurance fund balance: %w", err)
	}
	if balance == nil {
		balance = new(big.Int)
	}
	return &Fund{store: store, logger: logger, balance: balance}, nil
}

// Balance returns the native balance of the fund.
func (f *Fund) Balance(_ context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.balance), nil
}

// Deposit adds operator capital.
func (f *Fund) Deposit(ctx context.Context, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	return f.apply(ctx, amount)
}

// DepositFee adds the insurance cut of a bridging fee.
func (f *Fund) DepositFee(ctx context.Context, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	_, err := f.apply(ctx, amount)
	return err
}

// LiquidateForReorg removes amount from the fund for a clawback. It fails with
// reorg.ErrInsufficientInsuranceFunds when the balance cannot cover it.
func (f *Fund) LiquidateForReorg(ctx context.Context, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if amount.Cmp(f.balance) > 0 {
		f.logger.Error("insurance fund cannot cover clawback",
			zap.Stringer("required", amount),
			zap.Stringer("balance", f.balance))
		return fmt.Errorf("%w: need %s, have %s", reorg.ErrInsufficientInsuranceFunds, amount, f.balance)
	}
	next := new(big.Int).Sub(f.balance, amount)
	if err := f.store.SetBalance(ctx, Account, next); err != nil {
		return fmt.Errorf("failed to persist insurance fund balance: %w", err)
	}
	f.balance = next
	f.logger.Info("insurance fund liquidated for reorg",
		zap.Stringer("amount", amount),
		zap.Stringer("balance", next))
	return nil
}

func (f *Fund) apply(ctx context.Context, delta *big.Int) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := new(big.Int).Add(f.balance, delta)
	if err := f.store.SetBalance(ctx, Account, next); err != nil {
		return nil, fmt.Errorf("failed to persist insurance fund balance: %w", err)
	}
	f.balance = next
	return new(big.Int).Set(next), nil
}
