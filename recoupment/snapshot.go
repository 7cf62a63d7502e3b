package recoupment

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/raisefund/libraise-go/fixedpoint"
	"github.com/raisefund/libraise-go/merkle"
	"github.com/raisefund/libraise-go/token"
)

// Snapshot is the off-ledger commitment a round is deposited against: the
// holder entitlements at close time plus the reserved (campaign, total)
// leaf, arranged into a sorted-pair Merkle tree.
type Snapshot struct {
	campaign token.Address
	total    *uint256.Int
	amounts  map[token.Address]*uint256.Int
	tree     *merkle.Tree
}

// BuildSnapshot commits to the given holder entitlements and the reserved
// campaign leaf. Entries must not contain the campaign address; the total
// leaf is appended last.
func BuildSnapshot(campaign token.Address, entries []token.Entry, total *uint256.Int) (*Snapshot, error) {
	if total == nil {
		return nil, ErrNilAmount
	}

	amounts := make(map[token.Address]*uint256.Int, len(entries))
	leaves := make([]merkle.Hash, 0, len(entries)+1)
	for _, e := range entries {
		if e.Amount == nil {
			return nil, ErrNilAmount
		}
		amounts[e.Address] = e.Amount.Clone()
		leaves = append(leaves, merkle.HashLeaf(e.Address, e.Amount))
	}
	leaves = append(leaves, merkle.HashLeaf(campaign, total))

	tree, err := merkle.NewTree(leaves)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		campaign: campaign,
		total:    total.Clone(),
		amounts:  amounts,
		tree:     tree,
	}, nil
}

// SnapshotLedger derives a snapshot from the current balance set: each
// holder's entitlement comes from the policy, and the round total is the
// policy's expected total, or the sum of entitlements for issuer-chosen
// pools when the issuer passes a nil pool.
func SnapshotLedger(campaign token.Address, ledger *token.Ledger, policy Policy, conv *fixedpoint.Converter, pool *uint256.Int) (*Snapshot, error) {
	entries := ledger.Entries()
	holders := make([]token.Entry, 0, len(entries))
	for _, e := range entries {
		entitlement, err := policy.Entitlement(e.Amount, conv)
		if err != nil {
			return nil, err
		}
		holders = append(holders, token.Entry{Address: e.Address, Amount: entitlement})
	}

	total, err := policy.ExpectedTotal(ledger.TotalSupply(), conv)
	if err != nil {
		return nil, err
	}
	if total == nil {
		total = pool
	}
	if total == nil {
		total = new(uint256.Int)
		for _, h := range holders {
			total.Add(total, h.Amount)
		}
	}

	return BuildSnapshot(campaign, holders, total)
}

// Root returns the snapshot's Merkle root.
func (s *Snapshot) Root() merkle.Hash {
	return s.tree.Root()
}

// Total returns the round total committed in the reserved campaign leaf.
func (s *Snapshot) Total() *uint256.Int {
	return s.total.Clone()
}

// DepositProof returns the sibling path for the reserved campaign leaf,
// the proof the issuer passes to Deposit.
func (s *Snapshot) DepositProof() ([]merkle.Hash, error) {
	return s.tree.Proof(merkle.HashLeaf(s.campaign, s.total))
}

// Proof returns the holder's entitlement and its sibling path, the pair a
// holder passes to Claim.
func (s *Snapshot) Proof(holder token.Address) (*uint256.Int, []merkle.Hash, error) {
	amount, ok := s.amounts[holder]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrHolderNotInSnapshot, holder)
	}
	proof, err := s.tree.Proof(merkle.HashLeaf(holder, amount))
	if err != nil {
		return nil, nil, err
	}
	return amount.Clone(), proof, nil
}
