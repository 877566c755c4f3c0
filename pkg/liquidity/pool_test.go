package liquidity

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	received *big.Int
	err      error
}

func (s *recordingSink) DepositFee(_ context.Context, amount *big.Int) error {
	if s.err != nil {
		return s.err
	}
	s.received.Add(s.received, amount)
	return nil
}

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	carol = common.HexToAddress("0x00000000000000000000000000000000000000c3")
)

func newTestPool(t *testing.T) (*Pool, *recordingSink) {
	t.Helper()
	sink := &recordingSink{received: new(big.Int)}
	pool, err := NewPool(Config{InsuranceRewardShare: 20}, sink, zap.NewNop())
	require.NoError(t, err)
	return pool, sink
}

func n(v int64) *big.Int { return big.NewInt(v) }

func TestPool_FeeSplitBetweenEqualProviders(t *testing.T) {
	ctx := context.Background()
	pool, sink := newTestPool(t)

	shares, err := pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)
	assert.Equal(t, "1000", shares.String())

	shares, err = pool.Deposit(ctx, bob, n(500))
	require.NoError(t, err)
	assert.Equal(t, "500", shares.String())

	// bring bob level with alice so both hold equal shares
	_, err = pool.Deposit(ctx, bob, n(500))
	require.NoError(t, err)
	require.Equal(t, pool.SharesOf(alice).String(), pool.SharesOf(bob).String())

	require.NoError(t, pool.DistributeFee(ctx, n(100)))

	assert.Equal(t, "20", sink.received.String())
	assert.Equal(t, "40", pool.PendingFees(alice).String())
	assert.Equal(t, "40", pool.PendingFees(bob).String())
	assert.Equal(t, "80", pool.TotalFees().String())
	assert.Equal(t, "2080", pool.Assets().String())
	assert.Equal(t, "2000", pool.AvailableLiquidity().String())
}

func TestPool_UnequalSharesRoundDown(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	_, err := pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)
	_, err = pool.Deposit(ctx, bob, n(500))
	require.NoError(t, err)

	require.NoError(t, pool.DistributeFee(ctx, n(100)))

	a := pool.PendingFees(alice)
	b := pool.PendingFees(bob)
	assert.Equal(t, "53", a.String())
	assert.Equal(t, "26", b.String())
	assert.LessOrEqual(t, new(big.Int).Add(a, b).Cmp(pool.TotalFees()), 0)
}

func TestPool_DepositErrors(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	_, err := pool.Deposit(ctx, alice, n(0))
	assert.ErrorIs(t, err, ErrZeroDeposit)
	_, err = pool.Deposit(ctx, alice, nil)
	assert.ErrorIs(t, err, ErrZeroDeposit)

	_, err = pool.Deposit(ctx, alice, n(10))
	require.NoError(t, err)
	// pool principal grows to 10010 so one unit mints 10/10010 shares
	pool.Credit(n(10_000))
	_, err = pool.Deposit(ctx, bob, n(1))
	assert.ErrorIs(t, err, ErrDepositTooSmall)
	assert.Equal(t, "0", pool.SharesOf(bob).String())
}

func TestPool_DepositWithNoPrincipal(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	_, err := pool.Deposit(ctx, alice, n(100))
	require.NoError(t, err)
	require.NoError(t, pool.Release(n(100)))

	_, err = pool.Deposit(ctx, bob, n(100))
	assert.ErrorIs(t, err, ErrInsufficientPoolBalance)
}

func TestPool_WithdrawReturnsPrincipal(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	deposits := map[common.Address]int64{alice: 1000, bob: 333, carol: 7}
	for user, amt := range deposits {
		_, err := pool.Deposit(ctx, user, n(amt))
		require.NoError(t, err)
	}

	total := new(big.Int)
	for user := range deposits {
		out, err := pool.Withdraw(ctx, user, pool.SharesOf(user))
		require.NoError(t, err)
		total.Add(total, out)
	}

	diff := new(big.Int).Sub(n(1340), total)
	assert.True(t, diff.Sign() >= 0 && diff.Cmp(n(int64(len(deposits)))) <= 0, "rounding loss %s", diff)
	assert.Equal(t, "0", pool.TotalShares().String())
}

func TestPool_WithdrawErrors(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	_, err := pool.Withdraw(ctx, alice, n(1))
	assert.ErrorIs(t, err, ErrInvalidShareAmount)

	_, err = pool.Deposit(ctx, alice, n(100))
	require.NoError(t, err)

	_, err = pool.Withdraw(ctx, alice, n(0))
	assert.ErrorIs(t, err, ErrInvalidShareAmount)
	_, err = pool.Withdraw(ctx, alice, n(101))
	assert.ErrorIs(t, err, ErrInvalidShareAmount)
	assert.Equal(t, "100", pool.SharesOf(alice).String())
}

func TestPool_WithdrawSettlesFeesFirst(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	_, err := pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)
	require.NoError(t, pool.DistributeFee(ctx, n(50)))

	out, err := pool.Withdraw(ctx, alice, n(1000))
	require.NoError(t, err)
	assert.Equal(t, "1000", out.String())
	assert.Equal(t, "40", pool.PendingFees(alice).String())

	// new provider must not inherit alice's fees
	_, err = pool.Deposit(ctx, bob, n(500))
	require.NoError(t, err)
	assert.Equal(t, "0", pool.PendingFees(bob).String())

	claimed, err := pool.ClaimFees(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "40", claimed.String())
	assert.Equal(t, "0", pool.TotalFees().String())
}

func TestPool_ClaimFees(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)

	claimed, err := pool.ClaimFees(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0", claimed.String())

	_, err = pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)

	prev := pool.PendingFees(alice)
	for _, fee := range []int64{10, 1, 33, 250} {
		require.NoError(t, pool.DistributeFee(ctx, n(fee)))
		cur := pool.PendingFees(alice)
		assert.True(t, cur.Cmp(prev) >= 0, "pending fees decreased")
		prev = cur
	}

	claimed, err = pool.ClaimFees(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, prev.String(), claimed.String())
	assert.Equal(t, "0", pool.PendingFees(alice).String())
	assert.Equal(t, "1000", pool.Assets().String())

	again, err := pool.ClaimFees(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "0", again.String())
}

func TestPool_FeesBeforeFirstDeposit(t *testing.T) {
	ctx := context.Background()
	pool, sink := newTestPool(t)

	require.NoError(t, pool.DistributeFee(ctx, n(100)))
	assert.Equal(t, "20", sink.received.String())
	assert.Equal(t, "80", pool.TotalFees().String())

	_, err := pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)
	assert.Equal(t, "80", pool.PendingFees(alice).String())

	_, err = pool.Deposit(ctx, bob, n(1000))
	require.NoError(t, err)
	assert.Equal(t, "0", pool.PendingFees(bob).String())
}

func TestPool_DistributeFeeSinkFailure(t *testing.T) {
	ctx := context.Background()
	pool, sink := newTestPool(t)
	_, err := pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)

	// a rejected insurance cut stays with providers
	sink.err = errors.New("fund offline")
	require.ErrorIs(t, pool.DistributeFee(ctx, n(100)), ErrInsuranceFeeRetained)
	assert.Equal(t, "0", sink.received.String())
	assert.Equal(t, "100", pool.TotalFees().String())
	assert.Equal(t, "1100", pool.Assets().String())
	assert.Equal(t, "100", pool.PendingFees(alice).String())

	assert.ErrorIs(t, pool.DistributeFee(ctx, n(-1)), ErrInvalidFee)
}

func TestPool_Release(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)
	_, err := pool.Deposit(ctx, alice, n(100))
	require.NoError(t, err)
	require.NoError(t, pool.DistributeFee(ctx, n(50)))

	// fees are not available for payouts
	assert.ErrorIs(t, pool.Release(n(101)), ErrInsufficientPoolBalance)
	require.NoError(t, pool.Release(n(100)))
	assert.Equal(t, "0", pool.AvailableLiquidity().String())
	assert.Equal(t, "40", pool.Assets().String())
}

func TestPool_StateRestore(t *testing.T) {
	ctx := context.Background()
	pool, _ := newTestPool(t)
	_, err := pool.Deposit(ctx, alice, n(1000))
	require.NoError(t, err)
	_, err = pool.Deposit(ctx, bob, n(1000))
	require.NoError(t, err)
	require.NoError(t, pool.DistributeFee(ctx, n(100)))

	restored, _ := newTestPool(t)
	require.NoError(t, restored.Restore(pool.State()))

	assert.Equal(t, pool.PendingFees(alice).String(), restored.PendingFees(alice).String())
	assert.Equal(t, pool.TotalShares().String(), restored.TotalShares().String())
	assert.Equal(t, pool.AvailableLiquidity().String(), restored.AvailableLiquidity().String())

	bad := pool.State()
	bad.TotalShares = n(1)
	assert.Error(t, restored.Restore(bad))
}
