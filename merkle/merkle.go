// Package merkle implements the sorted-pair Keccak-256 commitment scheme
// used to authenticate recoupment snapshots.
//
// The wire contract is pinned: a leaf is Keccak256 over the 20-byte address
// followed by the 32-byte big-endian amount, and interior nodes are
// Keccak256 over the two child hashes concatenated in ascending byte order.
// Sorting the pair makes verification position-free, so proofs carry no
// left/right flags. Changing either layout invalidates every proof ever
// generated.
package merkle

import (
	"bytes"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/raisefund/libraise-go/token"
)

// HashSize is the length of leaf and node hashes in bytes.
const HashSize = 32

// Hash is a leaf hash, interior node, or root.
type Hash [HashSize]byte

// ZeroRoot is the reserved sentinel meaning "no root". It must never
// validate a deposit or claim.
var ZeroRoot Hash

// IsZero returns true if the hash is the reserved sentinel.
func (h Hash) IsZero() bool {
	return h == ZeroRoot
}

// HashLeaf computes the leaf hash for an (address, amount) pair.
func HashLeaf(addr token.Address, amount *uint256.Int) Hash {
	value := amount.Bytes32()
	var h Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(addr[:])
	hasher.Write(value[:])
	hasher.Sum(h[:0])
	return h
}

// hashPair combines two nodes with the operands in ascending byte order.
func hashPair(a, b Hash) Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	var h Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(a[:])
	hasher.Write(b[:])
	hasher.Sum(h[:0])
	return h
}

// VerifyProof folds the sibling hashes over the leaf bottom-up and reports
// whether the computed root equals the expected one. An empty proof is
// valid only for a single-leaf tree whose root is the leaf itself.
func VerifyProof(leaf Hash, proof []Hash, root Hash) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed == root
}
