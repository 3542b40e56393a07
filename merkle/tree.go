package merkle

import (
	"bytes"
	"fmt"
)

// Tree is a full Merkle tree over a fixed claimant set, used to publish
// a list key and hand out proofs. Level 0 holds leaf hashes; the last
// level holds the root. Odd levels are padded by duplicating the last
// element, matching the proof-path computation in ComputeRoot.
type Tree struct {
	levels [][][]byte
	leaves [][]byte // claimants in insertion order
}

// BuildTree constructs a tree over the claimant addresses.
func BuildTree(claimants [][]byte) (*Tree, error) {
	if len(claimants) == 0 {
		return nil, ErrEmptyLeafSet
	}

	leaves := make([][]byte, len(claimants))
	level := make([][]byte, len(claimants))
	for i, c := range claimants {
		leaves[i] = append([]byte(nil), c...)
		level[i] = LeafHash(c)
	}

	levels := [][][]byte{level}
	for len(level) > 1 {
		if len(level)%2 != 0 {
			dup := make([]byte, RootSize)
			copy(dup, level[len(level)-1])
			level = append(level, dup)
			levels[len(levels)-1] = level
		}

		next := make([][]byte, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			combined := make([]byte, 2*RootSize)
			copy(combined[:RootSize], level[i])
			copy(combined[RootSize:], level[i+1])
			next[i/2] = DoubleHash(combined)
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels, leaves: leaves}, nil
}

// Root returns the tree's root as a list key.
func (t *Tree) Root() Root {
	var r Root
	copy(r[:], t.levels[len(t.levels)-1][0])
	return r
}

// ProofAt builds the proof for the leaf at the given index.
func (t *Tree) ProofAt(index uint32) (*Proof, error) {
	if int(index) >= len(t.leaves) {
		return nil, fmt.Errorf("%w: index %d of %d leaves", ErrLeafNotFound, index, len(t.leaves))
	}

	proof := &Proof{Index: index}
	pos := index
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := pos ^ 1
		if int(sibling) >= len(level) {
			// Odd level padded with a duplicate of the last element.
			sibling = pos
		}
		node := make([]byte, RootSize)
		copy(node, level[sibling])
		proof.Nodes = append(proof.Nodes, node)
		pos >>= 1
	}
	return proof, nil
}

// ProofFor builds the proof for the first leaf matching claimant.
func (t *Tree) ProofFor(claimant []byte) (*Proof, error) {
	for i, leaf := range t.leaves {
		if bytes.Equal(leaf, claimant) {
			return t.ProofAt(uint32(i))
		}
	}
	return nil, fmt.Errorf("%w: claimant %x", ErrLeafNotFound, claimant)
}
