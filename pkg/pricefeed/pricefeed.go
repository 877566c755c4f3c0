// Package pricefeed converts between native amounts and USD values using an external
// price oracle.
package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when the oracle has no usable price.
var ErrInvalidPrice = errors.New("invalid price")

var wad = decimal.New(1, 18)

// Oracle reports the price of one whole native unit in USD.
type Oracle interface {
	LatestPrice(ctx context.Context) (price decimal.Decimal, valid bool, err error)
}

// Quote is a validated price. All conversions of one operation use the same quote.
type Quote struct {
	Price decimal.Decimal
}

// ToUSD converts a wei amount to an 18-decimal USD value, rounding down.
func (q Quote) ToUSD(wei *big.Int) *big.Int {
	if wei == nil || wei.Sign() == 0 {
		return new(big.Int)
	}
	return decimal.NewFromBigInt(wei, 0).Mul(q.Price).Floor().BigInt()
}

// ToNative converts an 18-decimal USD value to wei, rounding down.
func (q Quote) ToNative(usd *big.Int) *big.Int {
	if usd == nil || usd.Sign() == 0 {
		return new(big.Int)
	}
	quo, _ := decimal.NewFromBigInt(usd, 0).QuoRem(q.Price, 0)
	return quo.BigInt()
}

// USDString renders an 18-decimal USD value for logs and API responses.
func USDString(usd *big.Int) string {
	if usd == nil {
		return "0"
	}
	return decimal.NewFromBigInt(usd, 0).Div(wad).String()
}

// Converter validates oracle prices and performs conversions.
type Converter struct {
	oracle Oracle
}

func NewConverter(oracle Oracle) *Converter {
	return &Converter{oracle: oracle}
}

// Quote fetches and validates the latest price.
func (c *Converter) Quote(ctx context.Context) (Quote, error) {
	price, valid, err := c.oracle.LatestPrice(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	if !valid {
		return Quote{}, fmt.Errorf("%w: oracle reports stale price", ErrInvalidPrice)
	}
	if !price.IsPositive() {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	return Quote{Price: price}, nil
}

func (c *Converter) ToUSD(ctx context.Context, wei *big.Int) (*big.Int, error) {
	q, err := c.Quote(ctx)
	if err != nil {
		return nil, err
	}
	return q.ToUSD(wei), nil
}

func (c *Converter) ToNative(ctx context.Context, usd *big.Int) (*big.Int, error) {
	q, err := c.Quote(ctx)
	if err != nil {
		return nil, err
	}
	return q.ToNative(usd), nil
}
