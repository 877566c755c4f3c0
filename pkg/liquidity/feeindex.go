package liquidity

import "math/big"

// Precision scales the fee index.
var Precision = big.NewInt(1_000_000_000_000_000_000)

// FeeIndex is the reward-per-share accumulator. Every division rounds down so the
// sum of what holders can claim never exceeds what was distributed; the remainder
// stays in the pool's fee balance.
type FeeIndex struct {
	value         *big.Int
	undistributed *big.Int
}

func NewFeeIndex() *FeeIndex {
	return &FeeIndex{value: new(big.Int), undistributed: new(big.Int)}
}

// Value returns a copy of the accumulator.
func (f *FeeIndex) Value() *big.Int {
	return new(big.Int).Set(f.value)
}

// Undistributed returns provider fees collected while no shares existed.
func (f *FeeIndex) Undistributed() *big.Int {
	return new(big.Int).Set(f.undistributed)
}

// Accrue adds a provider fee. With no shares outstanding the fee is parked until
// Fold is called.
func (f *FeeIndex) Accrue(fee, totalShares *big.Int) {
	if fee.Sign() <= 0 {
		return
	}
	if totalShares.Sign() == 0 {
		f.undistributed.Add(f.undistributed, fee)
		return
	}
	f.value.Add(f.value, perShare(fee, totalShares))
}

// Fold moves parked fees into the index once shares exist.
func (f *FeeIndex) Fold(totalShares *big.Int) {
	if f.undistributed.Sign() == 0 || totalShares.Sign() == 0 {
		return
	}
	f.value.Add(f.value, perShare(f.undistributed, totalShares))
	f.undistributed.SetInt64(0)
}

// Pending is shares * (index - baseline) / Precision, rounded down.
func (f *FeeIndex) Pending(shares, baseline *big.Int) *big.Int {
	if shares.Sign() == 0 {
		return new(big.Int)
	}
	delta := new(big.Int).Sub(f.value, baseline)
	if delta.Sign() <= 0 {
		return new(big.Int)
	}
	out := new(big.Int).Mul(shares, delta)
	return out.Quo(out, Precision)
}

func perShare(fee, totalShares *big.Int) *big.Int {
	inc := new(big.Int).Mul(fee, Precision)
	return inc.Quo(inc, totalShares)
}
