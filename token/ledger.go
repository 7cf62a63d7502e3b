package token

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/holiman/uint256"
)

// Entry is one holder's balance in a ledger export.
type Entry struct {
	Address Address
	Amount  *uint256.Int
}

// Ledger tracks tracking-token balances and the total supply.
//
// The supply is only ever mutated through Mint and Burn, so the invariant
// totalSupply == sum of all balances holds at every point between calls.
// The Ledger itself is not safe for concurrent use; the owning campaign
// serializes access.
type Ledger struct {
	balances    map[Address]*uint256.Int
	totalSupply *uint256.Int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances:    make(map[Address]*uint256.Int),
		totalSupply: new(uint256.Int),
	}
}

// NewLedgerFromEntries rebuilds a ledger from an exported balance set.
func NewLedgerFromEntries(entries []Entry) (*Ledger, error) {
	l := NewLedger()
	for _, e := range entries {
		if err := l.Mint(e.Address, e.Amount); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Mint credits amount to holder and grows the total supply.
func (l *Ledger) Mint(holder Address, amount *uint256.Int) error {
	if holder.IsZero() {
		return fmt.Errorf("%w: mint holder", ErrZeroAddress)
	}
	if amount.IsZero() {
		return nil
	}
	supply, overflow := new(uint256.Int).AddOverflow(l.totalSupply, amount)
	if overflow {
		return fmt.Errorf("%w: total supply", ErrOverflow)
	}
	balance := l.balance(holder)
	// Balance cannot overflow if the supply did not.
	l.balances[holder] = new(uint256.Int).Add(balance, amount)
	l.totalSupply = supply
	return nil
}

// Burn debits amount from holder and shrinks the total supply.
func (l *Ledger) Burn(holder Address, amount *uint256.Int) error {
	if holder.IsZero() {
		return fmt.Errorf("%w: burn holder", ErrZeroAddress)
	}
	balance := l.balance(holder)
	if balance.Lt(amount) {
		return fmt.Errorf("%w: burn %s exceeds balance %s of %s",
			ErrInsufficientBalance, amount, balance, holder)
	}
	remaining := new(uint256.Int).Sub(balance, amount)
	if remaining.IsZero() {
		delete(l.balances, holder)
	} else {
		l.balances[holder] = remaining
	}
	l.totalSupply = new(uint256.Int).Sub(l.totalSupply, amount)
	return nil
}

// Transfer moves amount between holders. The total supply is unchanged.
func (l *Ledger) Transfer(from, to Address, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: transfer party", ErrZeroAddress)
	}
	if amount.IsZero() {
		return nil
	}
	balance := l.balance(from)
	if balance.Lt(amount) {
		return fmt.Errorf("%w: transfer %s exceeds balance %s of %s",
			ErrInsufficientBalance, amount, balance, from)
	}
	remaining := new(uint256.Int).Sub(balance, amount)
	if remaining.IsZero() {
		delete(l.balances, from)
	} else {
		l.balances[from] = remaining
	}
	l.balances[to] = new(uint256.Int).Add(l.balance(to), amount)
	return nil
}

// BalanceOf returns a copy of the holder's balance.
func (l *Ledger) BalanceOf(holder Address) *uint256.Int {
	return l.balance(holder).Clone()
}

// TotalSupply returns a copy of the current total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	return l.totalSupply.Clone()
}

// Entries exports all non-zero balances ordered by address, the canonical
// order snapshot tooling relies on.
func (l *Ledger) Entries() []Entry {
	entries := make([]Entry, 0, len(l.balances))
	for addr, amount := range l.balances {
		entries = append(entries, Entry{Address: addr, Amount: amount.Clone()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].Address[:], entries[j].Address[:]) < 0
	})
	return entries
}

func (l *Ledger) balance(holder Address) *uint256.Int {
	if b, ok := l.balances[holder]; ok {
		return b
	}
	return new(uint256.Int)
}
