// Package authorize verifies off-ledger-signed action grants, the
// mechanism behind allow-list style minting: an authorizer signs
// (campaign, account, amount, nonce) and the grant is honored at most once
// per nonce.
package authorize

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/raisefund/libraise-go/token"
)

var (
	// ErrNilKey indicates a missing signing or verification key.
	ErrNilKey = errors.New("authorize: nil key")

	// ErrNilSignature indicates a grant without a signature.
	ErrNilSignature = errors.New("authorize: nil signature")

	// ErrBadSignature indicates the signature does not match the grant.
	ErrBadSignature = errors.New("authorize: bad signature")

	// ErrNonceUsed indicates the grant's nonce was already consumed.
	ErrNonceUsed = errors.New("authorize: nonce already used")

	// ErrNilAmount indicates a grant without an amount.
	ErrNilAmount = errors.New("authorize: nil amount")
)

// Grant is a signed, single-use authorization for an account to perform
// an action of the given size on a campaign.
type Grant struct {
	Account   token.Address
	Amount    *uint256.Int
	Nonce     uint64
	Signature *ec.Signature
}

// Digest computes the signed message hash: Keccak256 over the campaign
// address, the account address, the 32-byte big-endian amount, and the
// 8-byte big-endian nonce.
func Digest(campaign, account token.Address, amount *uint256.Int, nonce uint64) []byte {
	value := amount.Bytes32()
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(campaign[:])
	hasher.Write(account[:])
	hasher.Write(value[:])
	hasher.Write(nonceBytes[:])
	return hasher.Sum(nil)
}

// Authorizer issues grants for one campaign with a private key.
type Authorizer struct {
	campaign token.Address
	priv     *ec.PrivateKey
}

// NewAuthorizer creates an authorizer for the campaign.
func NewAuthorizer(campaign token.Address, priv *ec.PrivateKey) (*Authorizer, error) {
	if priv == nil {
		return nil, ErrNilKey
	}
	return &Authorizer{campaign: campaign, priv: priv}, nil
}

// Issue signs a grant for the account.
func (a *Authorizer) Issue(account token.Address, amount *uint256.Int, nonce uint64) (*Grant, error) {
	if amount == nil {
		return nil, ErrNilAmount
	}
	sig, err := a.priv.Sign(Digest(a.campaign, account, amount, nonce))
	if err != nil {
		return nil, fmt.Errorf("authorize: sign: %w", err)
	}
	return &Grant{
		Account:   account,
		Amount:    amount.Clone(),
		Nonce:     nonce,
		Signature: sig,
	}, nil
}

// Verifier checks grants against the authorizer's public key and consumes
// nonces so a grant cannot be replayed.
type Verifier struct {
	mu       sync.Mutex
	campaign token.Address
	pub      *ec.PublicKey
	used     map[uint64]bool
}

// NewVerifier creates a verifier bound to the campaign and public key.
func NewVerifier(campaign token.Address, pub *ec.PublicKey) (*Verifier, error) {
	if pub == nil {
		return nil, ErrNilKey
	}
	return &Verifier{
		campaign: campaign,
		pub:      pub,
		used:     make(map[uint64]bool),
	}, nil
}

// Verify checks the grant's signature and consumes its nonce. A valid
// grant verifies exactly once; replays fail ErrNonceUsed.
func (v *Verifier) Verify(g *Grant) error {
	if g == nil || g.Signature == nil {
		return ErrNilSignature
	}
	if g.Amount == nil {
		return ErrNilAmount
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.used[g.Nonce] {
		return fmt.Errorf("%w: %d", ErrNonceUsed, g.Nonce)
	}
	digest := Digest(v.campaign, g.Account, g.Amount, g.Nonce)
	if !g.Signature.Verify(digest, v.pub) {
		return ErrBadSignature
	}
	v.used[g.Nonce] = true
	return nil
}

// NonceUsed reports whether the nonce was already consumed.
func (v *Verifier) NonceUsed(nonce uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.used[nonce]
}
