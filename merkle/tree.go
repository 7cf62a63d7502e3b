package merkle

// Tree is a full in-memory Merkle tree over a fixed leaf set, used by
// snapshot tooling to derive the root and per-leaf proofs.
//
// Levels are built bottom-up with sorted-pair hashing. A level with an odd
// node count promotes its last node to the next level unhashed; proofs for
// such nodes simply skip that level.
type Tree struct {
	levels [][]Hash // levels[0] is the leaves, last level is the root
}

// NewTree builds a tree over the given leaves. Leaf order is preserved;
// only pairs are sorted at hash time.
func NewTree(leaves []Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	level := make([]Hash, len(leaves))
	copy(level, leaves)

	levels := [][]Hash{level}
	for len(level) > 1 {
		next := make([]Hash, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, hashPair(level[i], level[i+1]))
		}
		if len(level)%2 != 0 {
			next = append(next, level[len(level)-1])
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels}, nil
}

// Root returns the tree's root hash.
func (t *Tree) Root() Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Leaves returns a copy of the leaf level in insertion order.
func (t *Tree) Leaves() []Hash {
	out := make([]Hash, len(t.levels[0]))
	copy(out, t.levels[0])
	return out
}

// Proof returns the sibling path for the first occurrence of leaf.
func (t *Tree) Proof(leaf Hash) ([]Hash, error) {
	index := -1
	for i, l := range t.levels[0] {
		if l == leaf {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrLeafNotFound
	}

	var proof []Hash
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := index ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		// An odd trailing node has no sibling and is promoted as-is.
		index /= 2
	}
	return proof, nil
}
