package recoupment

import (
	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/fixedpoint"
)

// Policy computes the figures a distribution round is built from: the pool
// the issuer deposits and each holder's leaf amount. Policies run entirely
// off-ledger; the claims ledger itself only ever checks proofs, so a policy
// change cannot invalidate rounds already deposited.
type Policy interface {
	// ExpectedTotal returns the pool the issuer is expected to deposit for
	// the given tracking-token supply, or nil when the policy leaves the
	// pool size to the issuer's discretion.
	ExpectedTotal(totalSupply *uint256.Int, conv *fixedpoint.Converter) (*uint256.Int, error)

	// Entitlement returns a holder's leaf amount for their token balance.
	Entitlement(balance *uint256.Int, conv *fixedpoint.Converter) (*uint256.Int, error)
}

// CarryPolicy distributes an issuer-chosen pool pro rata: the claim unit is
// the tracking-token balance itself and the pool is whatever the issuer
// deposits.
type CarryPolicy struct{}

// ExpectedTotal returns nil: the carry pool is uncapped and issuer-chosen.
func (CarryPolicy) ExpectedTotal(*uint256.Int, *fixedpoint.Converter) (*uint256.Int, error) {
	return nil, nil
}

// Entitlement returns the holder's token balance unchanged.
func (CarryPolicy) Entitlement(balance *uint256.Int, _ *fixedpoint.Converter) (*uint256.Int, error) {
	return balance.Clone(), nil
}

// PreferredReturnPolicy pays back principal plus a fixed percentage,
// expressed in basis points (10000 = 100%).
type PreferredReturnPolicy struct {
	ReturnBasisPoints uint64
}

// ExpectedTotal returns totalSupply * price / Scale * (10000 + bps) / 10000.
func (p PreferredReturnPolicy) ExpectedTotal(totalSupply *uint256.Int, conv *fixedpoint.Converter) (*uint256.Int, error) {
	principal, err := conv.ToBase(totalSupply)
	if err != nil {
		return nil, err
	}
	return fixedpoint.ApplyBasisPoints(principal, p.ReturnBasisPoints)
}

// Entitlement returns the holder's principal plus the preferred return.
func (p PreferredReturnPolicy) Entitlement(balance *uint256.Int, conv *fixedpoint.Converter) (*uint256.Int, error) {
	principal, err := conv.ToBase(balance)
	if err != nil {
		return nil, err
	}
	return fixedpoint.ApplyBasisPoints(principal, p.ReturnBasisPoints)
}
