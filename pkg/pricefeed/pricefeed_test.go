package pricefeed

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOracle struct{}

func (failingOracle) LatestPrice(context.Context) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, errors.New("feed unreachable")
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func TestQuote_Conversions(t *testing.T) {
	q := Quote{Price: decimal.RequireFromString("2000.5")}

	usd := q.ToUSD(ether(2))
	assert.Equal(t, "4001000000000000000000", usd.String())
	assert.Equal(t, ether(2).String(), q.ToNative(usd).String())

	// 1 wei at $2000.5 is 2000.5 micro-units of USD; floor keeps 2000
	assert.Equal(t, "2000", q.ToUSD(big.NewInt(1)).String())

	// 1000 USD units / 2000.5 rounds down to 0 wei
	assert.Equal(t, "0", q.ToNative(big.NewInt(1000)).String())
	assert.Equal(t, "0", q.ToUSD(nil).String())
}

func TestConverter_RejectsBadPrices(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		oracle Oracle
	}{
		{"zero", NewStatic(decimal.Zero)},
		{"negative", NewStatic(decimal.NewFromInt(-3))},
		{"error", failingOracle{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConverter(tc.oracle).ToUSD(ctx, ether(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPrice))
		})
	}

	stale := NewStatic(decimal.NewFromInt(1))
	stale.Invalidate()
	_, err := NewConverter(stale).Quote(ctx)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	stale.Set(decimal.NewFromInt(5))
	usd, err := NewConverter(stale).ToUSD(ctx, ether(1))
	require.NoError(t, err)
	assert.Equal(t, ether(5).String(), usd.String())
}

func TestUSDString(t *testing.T) {
	assert.Equal(t, "1.5", USDString(big.NewInt(1_500_000_000_000_000_000)))
	assert.Equal(t, "0", USDString(nil))
}
