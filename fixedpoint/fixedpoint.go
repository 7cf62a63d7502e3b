// Package fixedpoint converts between base-currency amounts and
// tracking-token units at a fixed price.
//
// Both directions use floor division, so they are not exact inverses:
// ToBase(ToTokens(x)) <= x, and the difference is dust that stays with the
// payer. Reproducing the floor in both directions is part of the accounting
// contract; round-to-nearest would change balances.
package fixedpoint

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

const (
	// Scale is the fixed-point denominator of the price: a price of
	// 1e8 means one base-currency unit per whole tracking token.
	Scale = 100_000_000

	// BasisPointsDenominator is the basis-point scale, 10000 = 100%.
	BasisPointsDenominator = 10_000
)

var (
	scale    = uint256.NewInt(Scale)
	bpsDenom = uint256.NewInt(BasisPointsDenominator)
)

// Converter converts amounts at an immutable price, expressed in
// base-currency units per whole tracking token at Scale precision.
type Converter struct {
	price *uint256.Int
}

// NewConverter creates a converter for the given price.
func NewConverter(price *uint256.Int) (*Converter, error) {
	if price == nil || price.IsZero() {
		return nil, ErrZeroPrice
	}
	return &Converter{price: price.Clone()}, nil
}

// Price returns a copy of the converter's price.
func (c *Converter) Price() *uint256.Int {
	return c.price.Clone()
}

// ToTokens converts a base-currency amount to tracking-token units:
// base * Scale / price, floored.
func (c *Converter) ToTokens(base *uint256.Int) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(base, scale)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %d", ErrOverflow, base, Scale)
	}
	return product.Div(product, c.price), nil
}

// ToBase converts tracking-token units to a base-currency amount:
// tokens * price / Scale, floored.
func (c *Converter) ToBase(tokens *uint256.Int) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(tokens, c.price)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s", ErrOverflow, tokens, c.price)
	}
	return product.Div(product, scale), nil
}

// ApplyBasisPoints scales amount by (10000 + bps) / 10000, floored.
// With bps = 1000 an amount of 5000 becomes 5500.
func ApplyBasisPoints(amount *uint256.Int, bps uint64) (*uint256.Int, error) {
	if bps > math.MaxUint64-BasisPointsDenominator {
		return nil, fmt.Errorf("%w: basis points %d", ErrOverflow, bps)
	}
	factor := uint256.NewInt(BasisPointsDenominator + bps)
	product, overflow := new(uint256.Int).MulOverflow(amount, factor)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s", ErrOverflow, amount, factor)
	}
	return product.Div(product, bpsDenom), nil
}
