// Package paysplit divides a payout among fixed beneficiaries pro rata by
// share units. The last beneficiary receives the remainder, so the payouts
// always sum to the input exactly despite floor division.
package paysplit

import (
	"errors"
	"fmt"
	"math"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/token"
)

var (
	// ErrNoShares indicates an empty beneficiary list.
	ErrNoShares = errors.New("paysplit: no shares")

	// ErrZeroUnits indicates a beneficiary with zero share units.
	ErrZeroUnits = errors.New("paysplit: zero share units")

	// ErrZeroTotal indicates a zero payout amount.
	ErrZeroTotal = errors.New("paysplit: zero total")

	// ErrOverflow indicates an intermediate product exceeds 256 bits.
	ErrOverflow = errors.New("paysplit: arithmetic overflow")

	// ErrSplitMismatch indicates a payout set does not match the expected
	// split.
	ErrSplitMismatch = errors.New("paysplit: split mismatch")
)

// Share is one beneficiary's stake.
type Share struct {
	Address token.Address
	Units   uint64
}

// Payout is one beneficiary's computed amount.
type Payout struct {
	Address token.Address
	Amount  *uint256.Int
}

// Split divides total among the shares in proportion to their units.
func Split(total *uint256.Int, shares []Share) ([]Payout, error) {
	if total == nil || total.IsZero() {
		return nil, ErrZeroTotal
	}
	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	var totalUnits uint64
	for _, s := range shares {
		if s.Units == 0 {
			return nil, fmt.Errorf("%w: %s", ErrZeroUnits, s.Address)
		}
		if totalUnits > math.MaxUint64-s.Units {
			return nil, fmt.Errorf("%w: total share units", ErrOverflow)
		}
		totalUnits += s.Units
	}
	unitsDenom := uint256.NewInt(totalUnits)

	payouts := make([]Payout, len(shares))
	distributed := new(uint256.Int)
	for i, s := range shares {
		payouts[i].Address = s.Address
		if i == len(shares)-1 {
			// Last beneficiary gets the remainder.
			payouts[i].Amount = new(uint256.Int).Sub(total, distributed)
			continue
		}
		product, overflow := new(uint256.Int).MulOverflow(total, uint256.NewInt(s.Units))
		if overflow {
			return nil, fmt.Errorf("%w: %s * %d", ErrOverflow, total, s.Units)
		}
		amount := product.Div(product, unitsDenom)
		payouts[i].Amount = amount
		distributed.Add(distributed, amount)
	}
	return payouts, nil
}

// ValidateSplit checks that payouts match the expected split of total
// among the shares.
func ValidateSplit(payouts []Payout, total *uint256.Int, shares []Share) error {
	expected, err := Split(total, shares)
	if err != nil {
		return err
	}
	if len(payouts) != len(expected) {
		return fmt.Errorf("%w: payout count %d != share count %d", ErrSplitMismatch, len(payouts), len(expected))
	}
	for i := range payouts {
		if payouts[i].Address != expected[i].Address {
			return fmt.Errorf("%w: entry %d address", ErrSplitMismatch, i)
		}
		if payouts[i].Amount == nil || !payouts[i].Amount.Eq(expected[i].Amount) {
			return fmt.Errorf("%w: entry %d amount", ErrSplitMismatch, i)
		}
	}
	return nil
}
