// Package recoupment implements the proof-authenticated claims ledger used
// to distribute post-close returns without enumerating holders.
//
// A round is opened by depositing an amount under a Merkle root committing
// to the (address, amount) snapshot, with one reserved leaf binding the
// depositing contract's own address to the round total. Holders then claim
// against the root exactly once per leaf. The ledger never recomputes a
// policy formula; it only verifies proofs, so claim correctness is
// decoupled from how the snapshot was derived.
package recoupment

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/event"
	"github.com/raisefund/libraise-go/merkle"
	"github.com/raisefund/libraise-go/token"
)

// Round is one distribution round keyed by its Merkle root.
type Round struct {
	Deposited *uint256.Int
	claimed   map[merkle.Hash]bool
}

// Ledger tracks distribution rounds and their claimed leaves.
type Ledger struct {
	mu     sync.Mutex
	rounds map[merkle.Hash]*Round
	events event.Recorder
}

// NewLedger creates an empty claims ledger. A nil recorder discards events.
func NewLedger(rec event.Recorder) *Ledger {
	if rec == nil {
		rec = event.Discard{}
	}
	return &Ledger{
		rounds: make(map[merkle.Hash]*Round),
		events: rec,
	}
}

// Deposit opens a round under root. The proof must authenticate the
// depositor contract's own leaf (self, amount) against root, which forces
// the committed snapshot and the transferred amount to agree.
func (l *Ledger) Deposit(self token.Address, root merkle.Hash, proof []merkle.Hash, amount *uint256.Int) error {
	if amount == nil {
		return ErrNilAmount
	}
	if root.IsZero() {
		return ErrZeroRoot
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.rounds[root]; ok {
		return fmt.Errorf("%w: %x", ErrRootAlreadyDeposited, root)
	}
	leaf := merkle.HashLeaf(self, amount)
	if !merkle.VerifyProof(leaf, proof, root) {
		return fmt.Errorf("%w: deposit leaf for %s", ErrProofFailed, self)
	}

	l.rounds[root] = &Round{
		Deposited: amount.Clone(),
		claimed:   make(map[merkle.Hash]bool),
	}
	l.events.Record(event.RecoupmentDeposit{Root: root, Amount: amount.Clone()})
	return nil
}

// checkClaim validates a claim without marking it. Callers hold l.mu.
func (l *Ledger) checkClaim(caller token.Address, root merkle.Hash, proof []merkle.Hash, amount *uint256.Int) (*Round, merkle.Hash, error) {
	if amount == nil {
		return nil, merkle.Hash{}, ErrNilAmount
	}
	round, ok := l.rounds[root]
	if !ok {
		return nil, merkle.Hash{}, fmt.Errorf("%w: %x", ErrInvalidMerkleRoot, root)
	}
	leaf := merkle.HashLeaf(caller, amount)
	if !merkle.VerifyProof(leaf, proof, root) {
		return nil, merkle.Hash{}, fmt.Errorf("%w: claim leaf for %s", ErrProofFailed, caller)
	}
	if round.claimed[leaf] {
		return nil, merkle.Hash{}, fmt.Errorf("%w: leaf %x under root %x", ErrRecoupmentWithdrawn, leaf, root)
	}
	return round, leaf, nil
}

// VerifyClaim runs every claim check without consuming the leaf. It lets a
// caller validate a claim before committing side effects that must not
// precede an invalid one.
func (l *Ledger) VerifyClaim(caller token.Address, root merkle.Hash, proof []merkle.Hash, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _, err := l.checkClaim(caller, root, proof, amount)
	return err
}

// Claim marks the caller's leaf (caller, amount) as paid out under root.
// Each leaf can be claimed at most once per root; the same holder may
// claim independently under other deposited roots.
func (l *Ledger) Claim(caller token.Address, root merkle.Hash, proof []merkle.Hash, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	round, leaf, err := l.checkClaim(caller, root, proof, amount)
	if err != nil {
		return err
	}
	round.claimed[leaf] = true
	l.events.Record(event.RecoupmentWithdraw{Root: root, Leaf: leaf, Amount: amount.Clone()})
	return nil
}

// IsClaimed reports whether the leaf was paid out under root. It fails for
// a never-deposited root, distinguishing "unknown round" from "deposited
// but unclaimed".
func (l *Ledger) IsClaimed(root merkle.Hash, leaf merkle.Hash) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	round, ok := l.rounds[root]
	if !ok {
		return false, fmt.Errorf("%w: %x", ErrInvalidMerkleRoot, root)
	}
	return round.claimed[leaf], nil
}

// DepositedAmount returns the amount deposited under root.
func (l *Ledger) DepositedAmount(root merkle.Hash) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	round, ok := l.rounds[root]
	if !ok {
		return nil, fmt.Errorf("%w: %x", ErrInvalidMerkleRoot, root)
	}
	return round.Deposited.Clone(), nil
}

// RoundState is a serializable export of one round.
type RoundState struct {
	Root      merkle.Hash
	Deposited *uint256.Int
	Claimed   []merkle.Hash
}

// Export returns all rounds for persistence. Claimed leaves are unordered.
func (l *Ledger) Export() []RoundState {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]RoundState, 0, len(l.rounds))
	for root, round := range l.rounds {
		state := RoundState{Root: root, Deposited: round.Deposited.Clone()}
		for leaf := range round.claimed {
			state.Claimed = append(state.Claimed, leaf)
		}
		out = append(out, state)
	}
	return out
}

// Restore rebuilds the ledger's rounds from an export, replacing any
// current contents.
func (l *Ledger) Restore(states []RoundState) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rounds := make(map[merkle.Hash]*Round, len(states))
	for _, state := range states {
		if state.Root.IsZero() {
			return ErrZeroRoot
		}
		if state.Deposited == nil {
			return ErrNilAmount
		}
		round := &Round{
			Deposited: state.Deposited.Clone(),
			claimed:   make(map[merkle.Hash]bool, len(state.Claimed)),
		}
		for _, leaf := range state.Claimed {
			round.claimed[leaf] = true
		}
		rounds[state.Root] = round
	}
	l.rounds = rounds
	return nil
}
