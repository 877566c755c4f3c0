// Package risk bounds the value that may be bridged before the origin chain reaches
// finality.
package risk

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrAdmissionsHalted            = errors.New("admissions halted")
	ErrInsufficientLiquidity       = errors.New("insufficient destination liquidity")
	ErrExceedsSafeBridgeableAmount = errors.New("exceeds safe bridgeable amount")
	ErrDuplicateTransfer           = errors.New("transfer already pending")
	ErrInvalidAmount               = errors.New("invalid usd amount")
)

// PendingTransfer is an admitted outbound transfer that has not reached finality.
type PendingTransfer struct {
	TransferID  common.Hash
	AmountUSD   *big.Int
	OriginBlock uint64
}

// Controller owns the pending transfer set and pendingBridgeAmount.
type Controller struct {
	mu sync.RWMutex

	finalityPeriod uint64
	pending        map[common.Hash]PendingTransfer
	pendingAmount  *big.Int
	halted         bool
	haltReason     string
}

func NewController(finalityPeriod uint64) *Controller {
	return &Controller{
		finalityPeriod: finalityPeriod,
		pending:        make(map[common.Hash]PendingTransfer),
		pendingAmount:  new(big.Int),
	}
}

// FinalityPeriod returns the number of blocks after which a transfer is final.
func (c *Controller) FinalityPeriod() uint64 {
	return c.finalityPeriod
}

// ProcessFinalized drops every transfer with originBlock + finalityPeriod <= currentBlock.
func (c *Controller) ProcessFinalized(currentBlock uint64) (int, *big.Int) {
	finalized := c.Finalize(currentBlock)
	amount := new(big.Int)
	for _, p := range finalized {
		amount.Add(amount, p.AmountUSD)
	}
	return len(finalized), amount
}

// Finalize is ProcessFinalized returning the dropped transfers.
func (c *Controller) Finalize(currentBlock uint64) []PendingTransfer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var finalized []PendingTransfer
	for id, p := range c.pending {
		if !c.isFinal(p.OriginBlock, currentBlock) {
			continue
		}
		delete(c.pending, id)
		c.pendingAmount.Sub(c.pendingAmount, p.AmountUSD)
		finalized = append(finalized, p)
	}
	return finalized
}

// Restore registers transfers admitted by a previous run. Known ids are skipped.
func (c *Controller) Restore(transfers []PendingTransfer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range transfers {
		if p.AmountUSD == nil || p.AmountUSD.Sign() < 0 {
			return fmt.Errorf("%w: pending transfer %s", ErrInvalidAmount, p.TransferID.Hex())
		}
		if _, ok := c.pending[p.TransferID]; ok {
			continue
		}
		c.pending[p.TransferID] = PendingTransfer{
			TransferID:  p.TransferID,
			AmountUSD:   new(big.Int).Set(p.AmountUSD),
			OriginBlock: p.OriginBlock,
		}
		c.pendingAmount.Add(c.pendingAmount, p.AmountUSD)
	}
	return nil
}

// Check evaluates the admission bounds without registering anything.
func (c *Controller) Check(usdValue, insuranceFundUSD, destinationLiquidityUSD *big.Int) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.check(usdValue, insuranceFundUSD, destinationLiquidityUSD)
}

// Admit registers a pending transfer if it passes the liquidity bound and the
// insurance bound, in that order.
func (c *Controller) Admit(id common.Hash, usdValue, insuranceFundUSD, destinationLiquidityUSD *big.Int, originBlock uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(usdValue, insuranceFundUSD, destinationLiquidityUSD); err != nil {
		return err
	}
	if _, ok := c.pending[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTransfer, id.Hex())
	}
	c.pending[id] = PendingTransfer{
		TransferID:  id,
		AmountUSD:   new(big.Int).Set(usdValue),
		OriginBlock: originBlock,
	}
	c.pendingAmount.Add(c.pendingAmount, usdValue)
	return nil
}

// Cancel removes an admission whose transfer was never sent.
func (c *Controller) Cancel(id common.Hash) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	if !ok {
		return false
	}
	delete(c.pending, id)
	c.pendingAmount.Sub(c.pendingAmount, p.AmountUSD)
	return true
}

// SafeBridgeableAmount is max(0, insuranceFundUSD - pendingBridgeAmount).
func (c *Controller) SafeBridgeableAmount(insuranceFundUSD *big.Int) *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.safeAmount(insuranceFundUSD)
}

func (c *Controller) PendingBridgeAmount() *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(big.Int).Set(c.pendingAmount)
}

// Pending returns the live transfers ordered by origin block.
func (c *Controller) Pending() []PendingTransfer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]PendingTransfer, 0, len(c.pending))
	for _, p := range c.pending {
		out = append(out, PendingTransfer{TransferID: p.TransferID, AmountUSD: new(big.Int).Set(p.AmountUSD), OriginBlock: p.OriginBlock})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OriginBlock != out[j].OriginBlock {
			return out[i].OriginBlock < out[j].OriginBlock
		}
		return out[i].TransferID.Cmp(out[j].TransferID) < 0
	})
	return out
}

// Halt stops all admissions until Resume.
func (c *Controller) Halt(reason string) {
	c.mu.Lock()
	c.halted = true
	c.haltReason = reason
	c.mu.Unlock()
}

func (c *Controller) Resume() {
	c.mu.Lock()
	c.halted = false
	c.haltReason = ""
	c.mu.Unlock()
}

// Halted reports whether admissions are halted and why.
func (c *Controller) Halted() (bool, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.halted, c.haltReason
}

func (c *Controller) check(usdValue, insuranceFundUSD, destinationLiquidityUSD *big.Int) error {
	if c.halted {
		return fmt.Errorf("%w: %s", ErrAdmissionsHalted, c.haltReason)
	}
	if usdValue == nil || usdValue.Sign() < 0 {
		return ErrInvalidAmount
	}
	if destinationLiquidityUSD == nil || usdValue.Cmp(destinationLiquidityUSD) > 0 {
		return fmt.Errorf("%w: %s > %s", ErrInsufficientLiquidity, usdValue, orZero(destinationLiquidityUSD))
	}
	if safe := c.safeAmount(insuranceFundUSD); usdValue.Cmp(safe) > 0 {
		return fmt.Errorf("%w: %s > %s", ErrExceedsSafeBridgeableAmount, usdValue, safe)
	}
	return nil
}

func (c *Controller) safeAmount(insuranceFundUSD *big.Int) *big.Int {
	if insuranceFundUSD == nil || insuranceFundUSD.Cmp(c.pendingAmount) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(insuranceFundUSD, c.pendingAmount)
}

// isFinal compares without computing originBlock + finalityPeriod, which could overflow.
func (c *Controller) isFinal(originBlock, currentBlock uint64) bool {
	return currentBlock >= originBlock && currentBlock-originBlock >= c.finalityPeriod
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
