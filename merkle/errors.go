package merkle

import "errors"

var (
	// ErrEmptyLeafSet indicates a tree build over zero claimants.
	ErrEmptyLeafSet = errors.New("merkle: empty leaf set")

	// ErrLeafNotFound indicates the claimant is not in the tree.
	ErrLeafNotFound = errors.New("merkle: leaf not found")
)
