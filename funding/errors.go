package funding

import "errors"

var (
	// ErrInvalidStateTransition indicates a lifecycle transition outside
	// the transition table.
	ErrInvalidStateTransition = errors.New("funding: invalid state transition")

	// ErrFundingStatusRequired indicates an operation was called in the
	// wrong lifecycle state; the wrapped message names the required state.
	ErrFundingStatusRequired = errors.New("funding: status required")

	// ErrNotIssuer indicates the caller lacks issuer authority.
	ErrNotIssuer = errors.New("funding: caller is not the issuer")

	// ErrZeroAmount indicates a zero contribution.
	ErrZeroAmount = errors.New("funding: zero amount")

	// ErrInsufficientAllowance indicates the campaign cannot pull the
	// amount from the caller's payment account.
	ErrInsufficientAllowance = errors.New("funding: insufficient allowance")

	// ErrNothingToWithdraw indicates a withdraw with zero custodied funds.
	ErrNothingToWithdraw = errors.New("funding: nothing to withdraw")

	// ErrNothingToRefund indicates a refund by a holder with no balance.
	ErrNothingToRefund = errors.New("funding: nothing to refund")

	// ErrNilAmount indicates a nil amount was supplied.
	ErrNilAmount = errors.New("funding: nil amount")

	// Parameter validation errors.

	// ErrEmptyName indicates the campaign name is empty.
	ErrEmptyName = errors.New("funding: empty name")

	// ErrEmptySymbol indicates the tracking-token symbol is empty.
	ErrEmptySymbol = errors.New("funding: empty symbol")

	// ErrZeroCampaignAddress indicates the campaign address is the
	// reserved null account.
	ErrZeroCampaignAddress = errors.New("funding: zero campaign address")

	// ErrNilPaymentAsset indicates no payment asset was supplied.
	ErrNilPaymentAsset = errors.New("funding: nil payment asset")

	// ErrNilAccessControl indicates no access controller was supplied.
	ErrNilAccessControl = errors.New("funding: nil access controller")
)
