package liquidity

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Position is one provider's persisted stake.
type Position struct {
	User     common.Address
	Shares   *big.Int
	Baseline *big.Int
	Accrued  *big.Int
}

// State is a point in time copy of the pool used for persistence.
type State struct {
	Assets        *big.Int
	TotalShares   *big.Int
	TotalFees     *big.Int
	FeeIndex      *big.Int
	Undistributed *big.Int
	Positions     []Position
}

// State copies the pool. Positions are ordered by address.
func (p *Pool) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := State{
		Assets:        new(big.Int).Set(p.assets),
		TotalShares:   new(big.Int).Set(p.totalShares),
		TotalFees:     new(big.Int).Set(p.totalFees),
		FeeIndex:      p.index.Value(),
		Undistributed: p.index.Undistributed(),
		Positions:     make([]Position, 0, len(p.positions)),
	}
	for user, pos := range p.positions {
		s.Positions = append(s.Positions, Position{
			User:     user,
			Shares:   new(big.Int).Set(pos.shares),
			Baseline: new(big.Int).Set(pos.baseline),
			Accrued:  new(big.Int).Set(pos.accrued),
		})
	}
	sort.Slice(s.Positions, func(i, j int) bool {
		return s.Positions[i].User.Cmp(s.Positions[j].User) < 0
	})
	return s
}

// Restore replaces the pool contents with s after checking its totals.
func (p *Pool) Restore(s State) error {
	sum := new(big.Int)
	positions := make(map[common.Address]*position, len(s.Positions))
	for _, pos := range s.Positions {
		if pos.Shares.Sign() < 0 || pos.Accrued.Sign() < 0 {
			return fmt.Errorf("negative position for %s", pos.User.Hex())
		}
		sum.Add(sum, pos.Shares)
		positions[pos.User] = &position{
			shares:   new(big.Int).Set(pos.Shares),
			baseline: new(big.Int).Set(pos.Baseline),
			accrued:  new(big.Int).Set(pos.Accrued),
		}
	}
	if sum.Cmp(s.TotalShares) != 0 {
		return fmt.Errorf("positions hold %s shares, total is %s", sum, s.TotalShares)
	}
	if s.TotalFees.Cmp(s.Assets) > 0 {
		return fmt.Errorf("%w: fees %s exceed assets %s", ErrInsufficientPoolBalance, s.TotalFees, s.Assets)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets = new(big.Int).Set(s.Assets)
	p.totalShares = new(big.Int).Set(s.TotalShares)
	p.totalFees = new(big.Int).Set(s.TotalFees)
	p.index = &FeeIndex{value: new(big.Int).Set(s.FeeIndex), undistributed: new(big.Int).Set(s.Undistributed)}
	p.positions = positions
	return nil
}
