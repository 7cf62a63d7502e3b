// Package asset defines the fungible-asset capability a campaign consumes
// for its contribution currency and recoupment payouts, plus an in-memory
// implementation for local use and tests.
package asset

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/token"
)

var (
	// ErrInsufficientBalance indicates the source account cannot cover the
	// transfer.
	ErrInsufficientBalance = errors.New("asset: insufficient balance")

	// ErrInsufficientAllowance indicates the spender's approved amount
	// cannot cover the transfer.
	ErrInsufficientAllowance = errors.New("asset: insufficient allowance")

	// ErrZeroAddress indicates the reserved null account was used.
	ErrZeroAddress = errors.New("asset: zero address")
)

// Asset is the narrow fungible-asset capability the campaign depends on.
type Asset interface {
	// Transfer moves amount from one account to another.
	Transfer(from, to token.Address, amount *uint256.Int) error

	// TransferFrom moves amount from owner to dst, spending spender's
	// allowance.
	TransferFrom(spender, owner, dst token.Address, amount *uint256.Int) error

	// BalanceOf returns the account's balance.
	BalanceOf(account token.Address) *uint256.Int

	// Allowance returns the amount spender may move out of owner's account.
	Allowance(owner, spender token.Address) *uint256.Int
}
