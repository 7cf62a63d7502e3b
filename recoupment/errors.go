package recoupment

import "errors"

var (
	// ErrZeroRoot indicates a deposit under the reserved all-zero root.
	ErrZeroRoot = errors.New("recoupment: zero merkle root is reserved")

	// ErrRootAlreadyDeposited indicates a second deposit under the same root.
	ErrRootAlreadyDeposited = errors.New("recoupment: root already deposited")

	// ErrInvalidMerkleRoot indicates the root was never deposited.
	ErrInvalidMerkleRoot = errors.New("recoupment: invalid merkle root")

	// ErrProofFailed indicates the proof does not authenticate the leaf
	// against the root.
	ErrProofFailed = errors.New("recoupment: proof failed")

	// ErrRecoupmentWithdrawn indicates the leaf was already claimed under
	// this root.
	ErrRecoupmentWithdrawn = errors.New("recoupment: already withdrawn")

	// ErrNilAmount indicates a nil amount was supplied.
	ErrNilAmount = errors.New("recoupment: nil amount")

	// ErrHolderNotInSnapshot indicates the address has no leaf in the
	// snapshot.
	ErrHolderNotInSnapshot = errors.New("recoupment: holder not in snapshot")
)
