package merkle

import "errors"

var (
	// ErrNoLeaves indicates a tree was built from an empty leaf set.
	ErrNoLeaves = errors.New("merkle: no leaves")

	// ErrLeafNotFound indicates the leaf is not part of the tree.
	ErrLeafNotFound = errors.New("merkle: leaf not found")
)
