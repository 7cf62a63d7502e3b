package token

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address identifies an account on the ledger.
type Address [AddressSize]byte

// ZeroAddress is the reserved null account. Mint events use it as the
// source and burn events use it as the destination; it can never hold a
// balance.
var ZeroAddress Address

// IsZero returns true if the address is the reserved null account.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the address as a 0x-prefixed hex string.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AddressFromHex parses a 0x-prefixed or bare hex string into an Address.
func AddressFromHex(s string) (Address, error) {
	var addr Address
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(raw) != AddressSize {
		return addr, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, AddressSize, len(raw))
	}
	copy(addr[:], raw)
	return addr, nil
}
