// Package liquidity implements the share based liquidity pool that funds bridge
// payouts and earns bridging fees.
package liquidity

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var (
	ErrZeroDeposit             = errors.New("deposit amount is zero")
	ErrDepositTooSmall         = errors.New("deposit too small to mint shares")
	ErrInvalidShareAmount      = errors.New("invalid share amount")
	ErrInsufficientPoolBalance = errors.New("insufficient pool balance")
	ErrInvalidFee              = errors.New("invalid fee")
	// ErrInsuranceFeeRetained reports a fee whose insurance cut stayed with providers.
	ErrInsuranceFeeRetained = errors.New("insurance fee retained by pool")
)

// InsuranceSink receives the insurance fund's cut of every fee.
type InsuranceSink interface {
	DepositFee(ctx context.Context, amount *big.Int) error
}

// Config holds pool parameters.
type Config struct {
	// InsuranceRewardShare is the percentage of each fee forwarded to the insurance fund.
	InsuranceRewardShare uint64
}

type position struct {
	shares   *big.Int
	baseline *big.Int
	accrued  *big.Int
}

// Pool tracks ownership of pooled native liquidity and the fees it earned.
// assets includes fees; principal is assets minus totalFees.
type Pool struct {
	mu sync.RWMutex

	cfg    Config
	sink   InsuranceSink
	logger *zap.Logger

	assets      *big.Int
	totalShares *big.Int
	totalFees   *big.Int
	index       *FeeIndex
	positions   map[common.Address]*position
}

func NewPool(cfg Config, sink InsuranceSink, logger *zap.Logger) (*Pool, error) {
	if cfg.InsuranceRewardShare > 100 {
		return nil, fmt.Errorf("insurance reward share %d exceeds 100", cfg.InsuranceRewardShare)
	}
	return &Pool{
		cfg:         cfg,
		sink:        sink,
		logger:      logger,
		assets:      new(big.Int),
		totalShares: new(big.Int),
		totalFees:   new(big.Int),
		index:       NewFeeIndex(),
		positions:   make(map[common.Address]*position),
	}, nil
}

// Deposit adds amount to the pool and mints shares for user.
func (p *Pool) Deposit(_ context.Context, user common.Address, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrZeroDeposit
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	principal := p.principal()
	var minted *big.Int
	if p.totalShares.Sign() == 0 {
		minted = new(big.Int).Set(amount)
	} else {
		if principal.Sign() <= 0 {
			p.logger.Error("pool has shares but no principal",
				zap.Stringer("total_shares", p.totalShares),
				zap.Stringer("assets", p.assets),
				zap.Stringer("total_fees", p.totalFees))
			return nil, fmt.Errorf("%w: no principal backs %s shares", ErrInsufficientPoolBalance, p.totalShares)
		}
		minted = new(big.Int).Mul(amount, p.totalShares)
		minted.Quo(minted, principal)
		if minted.Sign() == 0 {
			return nil, ErrDepositTooSmall
		}
	}

	pos := p.settle(user)
	bootstrap := p.totalShares.Sign() == 0

	pos.shares.Add(pos.shares, minted)
	p.totalShares.Add(p.totalShares, minted)
	p.assets.Add(p.assets, amount)

	if bootstrap {
		p.index.Fold(p.totalShares)
	}
	return new(big.Int).Set(minted), nil
}

// Withdraw burns shares and returns the principal they represent. Pending fees are
// settled first and remain claimable.
func (p *Pool) Withdraw(_ context.Context, user common.Address, shares *big.Int) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pos := p.positions[user]
	if shares == nil || shares.Sign() <= 0 || pos == nil || shares.Cmp(pos.shares) > 0 {
		return nil, ErrInvalidShareAmount
	}

	p.settle(user)

	principal := p.principal()
	amount := new(big.Int).Mul(shares, principal)
	amount.Quo(amount, p.totalShares)
	if amount.Cmp(principal) > 0 || amount.Cmp(p.assets) > 0 {
		p.logger.Error("pool invariant violated on withdraw",
			zap.String("user", user.Hex()),
			zap.Stringer("amount", amount),
			zap.Stringer("principal", principal),
			zap.Stringer("assets", p.assets))
		return nil, fmt.Errorf("%w: withdraw %s exceeds %s", ErrInsufficientPoolBalance, amount, principal)
	}

	pos.shares.Sub(pos.shares, shares)
	p.totalShares.Sub(p.totalShares, shares)
	p.assets.Sub(p.assets, amount)
	p.prune(user, pos)
	return amount, nil
}

// DistributeFee splits fee between the insurance fund and liquidity providers.
// The insurance cut is forwarded before any pool state changes. If the sink rejects
// it the whole fee is credited to providers and ErrInsuranceFeeRetained is returned,
// so the fee is never lost.
func (p *Pool) DistributeFee(ctx context.Context, fee *big.Int) error {
	if fee == nil || fee.Sign() == 0 {
		return nil
	}
	if fee.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidFee, fee)
	}

	insurance := new(big.Int).Mul(fee, new(big.Int).SetUint64(p.cfg.InsuranceRewardShare))
	insurance.Quo(insurance, big.NewInt(100))
	provider := new(big.Int).Sub(fee, insurance)

	var sinkErr error
	if insurance.Sign() > 0 {
		if err := p.sink.DepositFee(ctx, insurance); err != nil {
			p.logger.Warn("insurance fund rejected fee cut, crediting providers",
				zap.Stringer("fee", fee),
				zap.Stringer("insurance_cut", insurance),
				zap.Error(err))
			provider.Set(fee)
			sinkErr = fmt.Errorf("%w: %v", ErrInsuranceFeeRetained, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets.Add(p.assets, provider)
	p.totalFees.Add(p.totalFees, provider)
	p.index.Accrue(provider, p.totalShares)
	return sinkErr
}

// ClaimFees removes the user's claimable fees from the pool and returns them.
// Zero claimable fees is not an error.
func (p *Pool) ClaimFees(_ context.Context, user common.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.positions[user]; !ok {
		return new(big.Int), nil
	}
	pos := p.settle(user)
	amount := new(big.Int).Set(pos.accrued)
	if amount.Sign() == 0 {
		return amount, nil
	}
	if amount.Cmp(p.totalFees) > 0 || amount.Cmp(p.assets) > 0 {
		p.logger.Error("pool invariant violated on claim",
			zap.String("user", user.Hex()),
			zap.Stringer("amount", amount),
			zap.Stringer("total_fees", p.totalFees),
			zap.Stringer("assets", p.assets))
		return nil, fmt.Errorf("%w: claim %s exceeds fees %s", ErrInsufficientPoolBalance, amount, p.totalFees)
	}

	pos.accrued.SetInt64(0)
	p.totalFees.Sub(p.totalFees, amount)
	p.assets.Sub(p.assets, amount)
	p.prune(user, pos)
	return amount, nil
}

// Credit adds bridge inflow to the pool principal.
func (p *Pool) Credit(amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	p.mu.Lock()
	p.assets.Add(p.assets, amount)
	p.mu.Unlock()
}

// Release removes a bridge payout from the pool principal.
func (p *Pool) Release(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if amount.Cmp(p.principal()) > 0 {
		return fmt.Errorf("%w: release %s exceeds available %s", ErrInsufficientPoolBalance, amount, p.principal())
	}
	p.assets.Sub(p.assets, amount)
	return nil
}

// PendingFees returns the fees user could claim now.
func (p *Pool) PendingFees(user common.Address) *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pos, ok := p.positions[user]
	if !ok {
		return new(big.Int)
	}
	pending := p.index.Pending(pos.shares, pos.baseline)
	return pending.Add(pending, pos.accrued)
}

func (p *Pool) SharesOf(user common.Address) *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if pos, ok := p.positions[user]; ok {
		return new(big.Int).Set(pos.shares)
	}
	return new(big.Int)
}

func (p *Pool) TotalShares() *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return new(big.Int).Set(p.totalShares)
}

func (p *Pool) TotalFees() *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return new(big.Int).Set(p.totalFees)
}

func (p *Pool) Assets() *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return new(big.Int).Set(p.assets)
}

// AvailableLiquidity is the principal that can fund payouts.
func (p *Pool) AvailableLiquidity() *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.principal()
}

// FeeIndex returns the current accumulator value.
func (p *Pool) FeeIndex() *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index.Value()
}

func (p *Pool) principal() *big.Int {
	return new(big.Int).Sub(p.assets, p.totalFees)
}

// settle moves the user's index earnings into accrued and resets the baseline.
func (p *Pool) settle(user common.Address) *position {
	pos, ok := p.positions[user]
	if !ok {
		pos = &position{shares: new(big.Int), baseline: p.index.Value(), accrued: new(big.Int)}
		p.positions[user] = pos
		return pos
	}
	pos.accrued.Add(pos.accrued, p.index.Pending(pos.shares, pos.baseline))
	pos.baseline = p.index.Value()
	return pos
}

func (p *Pool) prune(user common.Address, pos *position) {
	if pos.shares.Sign() == 0 && pos.accrued.Sign() == 0 {
		delete(p.positions, user)
	}
}
