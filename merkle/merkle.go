// Package merkle implements the allowlist gate: membership of a claimant
// address in a Merkle set is proven with a root plus a bottom-up proof
// path instead of an explicit list. The all-zero root is the public
// list and admits every claimant.
package merkle

import "crypto/sha256"

// RootSize is the byte length of a Merkle root / list key.
const RootSize = 32

// Root is a 32-byte Merkle root used as an invite list key.
type Root [RootSize]byte

// PublicRoot is the zero root: no membership set, open to all.
var PublicRoot Root

// IsPublic reports whether the root is the open-to-all public root.
func (r Root) IsPublic() bool { return r == PublicRoot }

// Proof is a bottom-up Merkle path for one leaf. Bit i of Index selects
// the side of Nodes[i]: 0 means the running hash is on the left.
type Proof struct {
	Index uint32
	Nodes [][]byte
}

// DoubleHash computes SHA256(SHA256(data)).
func DoubleHash(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// LeafHash computes the leaf hash for a claimant address.
func LeafHash(claimant []byte) []byte {
	return DoubleHash(claimant)
}

// ComputeRoot recomputes the Merkle root from a leaf hash, its index in
// the tree, and the proof branch nodes (bottom-up). Returns nil if the
// leaf or any node is not hash-sized.
func ComputeRoot(leaf []byte, index uint32, nodes [][]byte) []byte {
	if len(leaf) != RootSize {
		return nil
	}

	hash := make([]byte, RootSize)
	copy(hash, leaf)

	for i, node := range nodes {
		if len(node) != RootSize {
			return nil
		}
		combined := make([]byte, 2*RootSize)
		if (index>>uint(i))&1 == 0 {
			// Current hash is on the left
			copy(combined[:RootSize], hash)
			copy(combined[RootSize:], node)
		} else {
			// Current hash is on the right
			copy(combined[:RootSize], node)
			copy(combined[RootSize:], hash)
		}
		hash = DoubleHash(combined)
	}

	return hash
}

// VerifyProof reports whether proof shows claimant's membership under
// root. A public root verifies any claimant, proof ignored.
func VerifyProof(root Root, claimant []byte, proof *Proof) bool {
	if root.IsPublic() {
		return true
	}
	if proof == nil {
		return false
	}
	computed := ComputeRoot(LeafHash(claimant), proof.Index, proof.Nodes)
	if computed == nil {
		return false
	}
	for i := 0; i < RootSize; i++ {
		if computed[i] != root[i] {
			return false
		}
	}
	return true
}
