package asset

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/token"
)

// MemAsset is an in-memory fungible asset with mint and approve entry
// points, the stand-in for an external payment currency.
type MemAsset struct {
	mu         sync.Mutex
	balances   map[token.Address]*uint256.Int
	allowances map[token.Address]map[token.Address]*uint256.Int
}

// NewMemAsset creates an empty in-memory asset.
func NewMemAsset() *MemAsset {
	return &MemAsset{
		balances:   make(map[token.Address]*uint256.Int),
		allowances: make(map[token.Address]map[token.Address]*uint256.Int),
	}
}

// Mint credits amount to the account.
func (a *MemAsset) Mint(account token.Address, amount *uint256.Int) error {
	if account.IsZero() {
		return fmt.Errorf("%w: mint account", ErrZeroAddress)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balances[account] = new(uint256.Int).Add(a.balance(account), amount)
	return nil
}

// Approve sets spender's allowance over owner's account.
func (a *MemAsset) Approve(owner, spender token.Address, amount *uint256.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return fmt.Errorf("%w: approve party", ErrZeroAddress)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.allowances[owner] == nil {
		a.allowances[owner] = make(map[token.Address]*uint256.Int)
	}
	a.allowances[owner][spender] = amount.Clone()
	return nil
}

// Transfer moves amount from one account to another.
func (a *MemAsset) Transfer(from, to token.Address, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: transfer party", ErrZeroAddress)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.move(from, to, amount)
}

// TransferFrom moves amount from owner to dst, spending spender's allowance.
func (a *MemAsset) TransferFrom(spender, owner, dst token.Address, amount *uint256.Int) error {
	if spender.IsZero() || owner.IsZero() || dst.IsZero() {
		return fmt.Errorf("%w: transferFrom party", ErrZeroAddress)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	allowance := a.allowance(owner, spender)
	if allowance.Lt(amount) {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientAllowance, allowance, amount)
	}
	if err := a.move(owner, dst, amount); err != nil {
		return err
	}
	a.allowances[owner][spender] = new(uint256.Int).Sub(allowance, amount)
	return nil
}

// BalanceOf returns the account's balance.
func (a *MemAsset) BalanceOf(account token.Address) *uint256.Int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance(account).Clone()
}

// Allowance returns the amount spender may move out of owner's account.
func (a *MemAsset) Allowance(owner, spender token.Address) *uint256.Int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allowance(owner, spender).Clone()
}

func (a *MemAsset) move(from, to token.Address, amount *uint256.Int) error {
	balance := a.balance(from)
	if balance.Lt(amount) {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientBalance, balance, amount)
	}
	a.balances[from] = new(uint256.Int).Sub(balance, amount)
	a.balances[to] = new(uint256.Int).Add(a.balance(to), amount)
	return nil
}

func (a *MemAsset) balance(account token.Address) *uint256.Int {
	if b, ok := a.balances[account]; ok {
		return b
	}
	return new(uint256.Int)
}

func (a *MemAsset) allowance(owner, spender token.Address) *uint256.Int {
	if m, ok := a.allowances[owner]; ok {
		if v, ok := m[spender]; ok {
			return v
		}
	}
	return new(uint256.Int)
}
