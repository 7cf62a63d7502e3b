// Package funding implements the capital-raising campaign: a one-way
// lifecycle gating contributions, refunds, issuer withdrawal, and
// proof-authenticated recoupment rounds over a tracking-token ledger.
package funding

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/access"
	"github.com/raisefund/libraise-go/asset"
	"github.com/raisefund/libraise-go/event"
	"github.com/raisefund/libraise-go/fixedpoint"
	"github.com/raisefund/libraise-go/merkle"
	"github.com/raisefund/libraise-go/recoupment"
	"github.com/raisefund/libraise-go/token"
)

// Campaign is one funding round. Every entry point runs under the
// campaign's mutex, giving the same total order a serialized-transaction
// host provides; no operation observes or leaves partial state.
type Campaign struct {
	mu sync.Mutex

	params Params
	acl    access.Controller
	events event.Recorder

	status      Status
	ledger      *token.Ledger
	conv        *fixedpoint.Converter
	recoup      *recoupment.Ledger
	totalRaised *uint256.Int
}

// NewCampaign creates a campaign in the Created state.
func NewCampaign(p Params, acl access.Controller, rec event.Recorder) (*Campaign, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	if acl == nil {
		return nil, ErrNilAccessControl
	}
	if rec == nil {
		rec = event.Discard{}
	}
	conv, err := fixedpoint.NewConverter(p.Price)
	if err != nil {
		return nil, err
	}
	p.Price = p.Price.Clone()
	return &Campaign{
		params:      p,
		acl:         acl,
		events:      rec,
		status:      Created,
		ledger:      token.NewLedger(),
		conv:        conv,
		recoup:      recoupment.NewLedger(rec),
		totalRaised: new(uint256.Int),
	}, nil
}

// Open transitions Created -> Open. Issuer only.
func (c *Campaign) Open(caller token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireIssuer(caller); err != nil {
		return err
	}
	return c.transition(Open)
}

// Close transitions Open -> Closed, unlocking withdrawal and recoupment.
// No funds move. Issuer only.
func (c *Campaign) Close(caller token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireIssuer(caller); err != nil {
		return err
	}
	return c.transition(Closed)
}

// Cancel transitions Open -> Cancelled, unlocking refunds. Issuer only.
func (c *Campaign) Cancel(caller token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireIssuer(caller); err != nil {
		return err
	}
	return c.transition(Cancelled)
}

// Fund pulls amount of the payment asset from the caller and mints the
// corresponding tracking tokens. The emitted Transfer event carries the
// minted token quantity, not the contributed amount.
func (c *Campaign) Fund(caller token.Address, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireStatus(Open); err != nil {
		return err
	}
	if amount == nil {
		return ErrNilAmount
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if allowance := c.params.Payment.Allowance(caller, c.params.Address); allowance.Lt(amount) {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientAllowance, allowance, amount)
	}

	tokens, err := c.conv.ToTokens(amount)
	if err != nil {
		return err
	}
	if err := c.params.Payment.TransferFrom(c.params.Address, caller, c.params.Address, amount); err != nil {
		return err
	}
	if err := c.ledger.Mint(caller, tokens); err != nil {
		return err
	}
	c.totalRaised.Add(c.totalRaised, amount)
	c.events.Record(event.Transfer{From: token.ZeroAddress, To: caller, Tokens: tokens})
	return nil
}

// Transfer moves tracking tokens between holders.
func (c *Campaign) Transfer(caller, to token.Address, tokens *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tokens == nil {
		return ErrNilAmount
	}
	if err := c.ledger.Transfer(caller, to, tokens); err != nil {
		return err
	}
	c.events.Record(event.Transfer{From: caller, To: to, Tokens: tokens.Clone()})
	return nil
}

// Withdraw moves the campaign's entire custodied payment balance to the
// issuer. A zero custody balance is rejected rather than silently moving
// nothing, so a repeated withdraw gets a clear signal.
func (c *Campaign) Withdraw(caller token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireIssuer(caller); err != nil {
		return err
	}
	if err := c.requireStatus(Closed); err != nil {
		return err
	}
	balance := c.params.Payment.BalanceOf(c.params.Address)
	if balance.IsZero() {
		return ErrNothingToWithdraw
	}
	if err := c.params.Payment.Transfer(c.params.Address, caller, balance); err != nil {
		return err
	}
	c.events.Record(event.Withdraw{To: caller, Amount: balance})
	return nil
}

// Refund burns the caller's full tracking-token balance and pays back its
// base-currency value. Only legal after cancellation; a holder with no
// balance is rejected, so a second refund fails.
func (c *Campaign) Refund(caller token.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireStatus(Cancelled); err != nil {
		return err
	}
	balance := c.ledger.BalanceOf(caller)
	if balance.IsZero() {
		return ErrNothingToRefund
	}
	amount, err := c.conv.ToBase(balance)
	if err != nil {
		return err
	}
	if err := c.ledger.Burn(caller, balance); err != nil {
		return err
	}
	if err := c.params.Payment.Transfer(c.params.Address, caller, amount); err != nil {
		return err
	}
	c.events.Record(event.Transfer{From: caller, To: token.ZeroAddress, Tokens: balance})
	c.events.Record(event.Refund{Holder: caller, Tokens: balance, Amount: amount})
	return nil
}

// DepositRecoupment opens a distribution round: the proof must bind the
// campaign's own (address, amount) leaf to root, and amount is pulled from
// the caller into custody. Issuer only, after close.
func (c *Campaign) DepositRecoupment(caller token.Address, root merkle.Hash, proof []merkle.Hash, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireIssuer(caller); err != nil {
		return err
	}
	if err := c.requireStatus(Closed); err != nil {
		return err
	}
	if amount == nil {
		return ErrNilAmount
	}
	if allowance := c.params.Payment.Allowance(caller, c.params.Address); allowance.Lt(amount) {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientAllowance, allowance, amount)
	}
	// Checked up front so the pull cannot fail after the round is recorded.
	if balance := c.params.Payment.BalanceOf(caller); balance.Lt(amount) {
		return fmt.Errorf("%w: depositor holds %s of %s", asset.ErrInsufficientBalance, balance, amount)
	}
	if err := c.recoup.Deposit(c.params.Address, root, proof, amount); err != nil {
		return err
	}
	return c.params.Payment.TransferFrom(c.params.Address, caller, c.params.Address, amount)
}

// ClaimRecoupment pays the caller their leaf amount under root, once.
func (c *Campaign) ClaimRecoupment(caller token.Address, root merkle.Hash, proof []merkle.Hash, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireStatus(Closed); err != nil {
		return err
	}
	if err := c.recoup.VerifyClaim(caller, root, proof, amount); err != nil {
		return err
	}
	// Checked after validation so the payout cannot fail once the leaf is
	// marked claimed.
	if balance := c.params.Payment.BalanceOf(c.params.Address); balance.Lt(amount) {
		return fmt.Errorf("%w: custody holds %s of %s", asset.ErrInsufficientBalance, balance, amount)
	}
	if err := c.recoup.Claim(caller, root, proof, amount); err != nil {
		return err
	}
	return c.params.Payment.Transfer(c.params.Address, caller, amount)
}

// IsClaimed reports whether the leaf was paid out under root.
func (c *Campaign) IsClaimed(root merkle.Hash, leaf merkle.Hash) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recoup.IsClaimed(root, leaf)
}

// Status returns the current lifecycle state.
func (c *Campaign) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Name returns the tracking token's name.
func (c *Campaign) Name() string { return c.params.Name }

// Symbol returns the tracking token's symbol.
func (c *Campaign) Symbol() string { return c.params.Symbol }

// Address returns the campaign's own account.
func (c *Campaign) Address() token.Address { return c.params.Address }

// Price returns the immutable token price.
func (c *Campaign) Price() *uint256.Int { return c.params.Price.Clone() }

// ReturnBasisPoints returns the configured preferred-return rate.
func (c *Campaign) ReturnBasisPoints() uint64 { return c.params.ReturnBasisPoints }

// TotalRaised returns the sum of all contributions while Open.
func (c *Campaign) TotalRaised() *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalRaised.Clone()
}

// BalanceOf returns a holder's tracking-token balance.
func (c *Campaign) BalanceOf(holder token.Address) *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.BalanceOf(holder)
}

// TotalSupply returns the tracking token's total supply.
func (c *Campaign) TotalSupply() *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.TotalSupply()
}

// Holdings exports the non-zero balance set ordered by address, the input
// snapshot tooling builds entitlements from.
func (c *Campaign) Holdings() []token.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Entries()
}

// Snapshot derives a recoupment snapshot from the current balance set
// under the given policy. For issuer-chosen pools (carry), pool sets the
// round total; policies with a computed total ignore it.
func (c *Campaign) Snapshot(policy recoupment.Policy, pool *uint256.Int) (*recoupment.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return recoupment.SnapshotLedger(c.params.Address, c.ledger, policy, c.conv, pool)
}

func (c *Campaign) requireIssuer(caller token.Address) error {
	if c.acl.IsOwner(caller) || c.acl.HasRole(access.Issuer, caller) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotIssuer, caller)
}

func (c *Campaign) requireStatus(required Status) error {
	if c.status != required {
		return fmt.Errorf("%w: %s (current %s)", ErrFundingStatusRequired, required, c.status)
	}
	return nil
}

func (c *Campaign) transition(to Status) error {
	if !canTransition(c.status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, c.status, to)
	}
	c.status = to
	return nil
}
