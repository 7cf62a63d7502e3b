package token

import "errors"

var (
	// ErrInvalidAddress indicates a malformed account address.
	ErrInvalidAddress = errors.New("token: invalid address")

	// ErrZeroAddress indicates the reserved null account was used as a holder.
	ErrZeroAddress = errors.New("token: zero address")

	// ErrInsufficientBalance indicates a burn or transfer exceeds the
	// holder's balance.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrOverflow indicates a balance or supply update would exceed 256 bits.
	ErrOverflow = errors.New("token: arithmetic overflow")
)
