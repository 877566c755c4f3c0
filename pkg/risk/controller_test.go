package risk

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(dollars int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(dollars), big.NewInt(1e18))
}

func id(b byte) common.Hash {
	return common.BytesToHash([]byte{b})
}

func TestAdmit_LiquidityBoundBindsFirst(t *testing.T) {
	c := NewController(64)
	err := c.Admit(id(1), usd(60_000), usd(100_000), usd(50_000), 10)
	require.ErrorIs(t, err, ErrInsufficientLiquidity)
	assert.Equal(t, "0", c.PendingBridgeAmount().String())
	assert.Empty(t, c.Pending())
}

func TestAdmit_SafeAmountBoundary(t *testing.T) {
	c := NewController(64)
	require.NoError(t, c.Admit(id(1), usd(30), usd(100), usd(1_000), 1))

	safe := c.SafeBridgeableAmount(usd(100))
	assert.Equal(t, usd(70).String(), safe.String())

	overByOne := new(big.Int).Add(safe, big.NewInt(1))
	err := c.Admit(id(2), overByOne, usd(100), usd(1_000), 2)
	require.ErrorIs(t, err, ErrExceedsSafeBridgeableAmount)

	require.NoError(t, c.Admit(id(3), safe, usd(100), usd(1_000), 2))
	assert.Equal(t, usd(100).String(), c.PendingBridgeAmount().String())
	assert.Equal(t, "0", c.SafeBridgeableAmount(usd(100)).String())
}

func TestSafeBridgeableAmount_Saturates(t *testing.T) {
	c := NewController(10)
	require.NoError(t, c.Admit(id(1), usd(80), usd(100), usd(100), 1))

	// insurance dropped below pending after a price move
	assert.Equal(t, "0", c.SafeBridgeableAmount(usd(50)).String())
	assert.Equal(t, "0", c.SafeBridgeableAmount(nil).String())

	err := c.Admit(id(2), big.NewInt(1), usd(50), usd(100), 2)
	require.ErrorIs(t, err, ErrExceedsSafeBridgeableAmount)
	assert.NoError(t, c.Admit(id(3), big.NewInt(0), usd(50), usd(100), 2))
}

func TestProcessFinalized_RemovesOnce(t *testing.T) {
	c := NewController(10)
	require.NoError(t, c.Admit(id(1), usd(5), usd(100), usd(100), 100))
	require.NoError(t, c.Admit(id(2), usd(7), usd(100), usd(100), 105))
	assert.Equal(t, usd(12).String(), c.PendingBridgeAmount().String())

	removed, amount := c.ProcessFinalized(109)
	assert.Equal(t, 0, removed)
	assert.Equal(t, "0", amount.String())

	removed, amount = c.ProcessFinalized(110)
	assert.Equal(t, 1, removed)
	assert.Equal(t, usd(5).String(), amount.String())
	assert.Equal(t, usd(7).String(), c.PendingBridgeAmount().String())

	removed, _ = c.ProcessFinalized(110)
	assert.Equal(t, 0, removed)

	removed, amount = c.ProcessFinalized(1_000)
	assert.Equal(t, 1, removed)
	assert.Equal(t, usd(7).String(), amount.String())
	assert.Equal(t, "0", c.PendingBridgeAmount().String())
}

func TestProcessFinalized_NoOverflow(t *testing.T) {
	c := NewController(100)
	require.NoError(t, c.Admit(id(1), usd(1), usd(10), usd(10), ^uint64(0)-5))
	removed, _ := c.ProcessFinalized(^uint64(0))
	assert.Equal(t, 0, removed)
}

func TestRestore_RebuildsPendingAmount(t *testing.T) {
	c := NewController(10)
	require.NoError(t, c.Admit(id(1), usd(5), usd(100), usd(100), 100))

	next := NewController(10)
	require.NoError(t, next.Restore(c.Pending()))
	require.NoError(t, next.Restore(c.Pending()))
	assert.Equal(t, usd(5).String(), next.PendingBridgeAmount().String())
	assert.Equal(t, usd(95).String(), next.SafeBridgeableAmount(usd(100)).String())
	require.ErrorIs(t, next.Admit(id(2), usd(96), usd(100), usd(100), 101), ErrExceedsSafeBridgeableAmount)

	finalized := next.Finalize(110)
	require.Len(t, finalized, 1)
	assert.Equal(t, id(1), finalized[0].TransferID)
	assert.Equal(t, "0", next.PendingBridgeAmount().String())

	assert.ErrorIs(t, next.Restore([]PendingTransfer{{TransferID: id(3)}}), ErrInvalidAmount)
}

func TestAdmit_DuplicateAndCancel(t *testing.T) {
	c := NewController(10)
	require.NoError(t, c.Admit(id(1), usd(1), usd(100), usd(100), 1))
	require.ErrorIs(t, c.Admit(id(1), usd(1), usd(100), usd(100), 1), ErrDuplicateTransfer)

	assert.True(t, c.Cancel(id(1)))
	assert.False(t, c.Cancel(id(1)))
	assert.Equal(t, "0", c.PendingBridgeAmount().String())
}

func TestHaltResume(t *testing.T) {
	c := NewController(10)
	c.Halt("clawback shortfall")
	halted, reason := c.Halted()
	assert.True(t, halted)
	assert.Equal(t, "clawback shortfall", reason)

	require.ErrorIs(t, c.Admit(id(1), usd(1), usd(100), usd(100), 1), ErrAdmissionsHalted)
	require.ErrorIs(t, c.Check(usd(1), usd(100), usd(100)), ErrAdmissionsHalted)

	c.Resume()
	require.NoError(t, c.Admit(id(1), usd(1), usd(100), usd(100), 1))
}

func TestPending_Ordered(t *testing.T) {
	c := NewController(10)
	require.NoError(t, c.Admit(id(2), usd(1), usd(100), usd(100), 9))
	require.NoError(t, c.Admit(id(1), usd(1), usd(100), usd(100), 3))
	pending := c.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, uint64(3), pending[0].OriginBlock)
	assert.Equal(t, id(2), pending[1].TransferID)
}
