package funding

import (
	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/asset"
	"github.com/raisefund/libraise-go/fixedpoint"
	"github.com/raisefund/libraise-go/token"
)

// Params are a campaign's immutable construction parameters.
type Params struct {
	// Name and Symbol label the tracking token.
	Name   string
	Symbol string

	// Address is the campaign's own account, the custody account on the
	// payment asset and the reserved snapshot leaf address.
	Address token.Address

	// Payment is the contribution currency.
	Payment asset.Asset

	// Price is the base-currency cost of one whole tracking token at
	// fixedpoint.Scale precision.
	Price *uint256.Int

	// ReturnBasisPoints configures the preferred-return rate; ignored by
	// the carry policy.
	ReturnBasisPoints uint64
}

// ValidateParams checks the construction parameters and returns the first
// error encountered, or nil if valid.
func ValidateParams(p Params) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Symbol == "" {
		return ErrEmptySymbol
	}
	if p.Address.IsZero() {
		return ErrZeroCampaignAddress
	}
	if p.Payment == nil {
		return ErrNilPaymentAsset
	}
	if p.Price == nil || p.Price.IsZero() {
		return fixedpoint.ErrZeroPrice
	}
	return nil
}
