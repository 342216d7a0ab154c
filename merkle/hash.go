// Package merkle implements the sparse storage and receipt trees keyed
// by (contract, key), plus the fixed 6-leaf checksum tree over block
// linkage fields.
package merkle

import (
	"crypto/sha256"

	"github.com/opnet-network/indexer/types"
)

// HashFunc is the tree's leaf/node hash function. The exact function
// choice must stay consistent with the VM side; this implementation fixes
// it to double-SHA256, matching the base chain's own Merkle convention,
// while keeping it swappable via this parameter rather than hardcoded
// past this seam (see DESIGN.md).
type HashFunc func(...[]byte) types.Hash

// DoubleSHA256 is the default HashFunc.
func DoubleSHA256(parts ...[]byte) types.Hash {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	first := h.Sum(nil)
	second := sha256.Sum256(first)
	return types.Hash(second)
}
