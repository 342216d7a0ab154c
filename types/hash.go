// Package types defines the core value objects shared by every OP_NET
// component: hashes, addresses, transactions, blocks, receipts and events.
package types

import (
	"crypto/subtle"
	"encoding/hex"
)

// Hash is a 32-byte digest, used for txids, block hashes and Merkle roots.
type Hash [32]byte

// ZeroHash is the canonical root used by empty storage/receipt trees.
var ZeroHash = Hash{}

func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(h[32-len(b):], b)
	return h
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func (h Hash) IsZero() bool { return h == ZeroHash }

// Equal performs a timing-safe comparison for every 32-byte hash comparison
// used in validation.
func (h Hash) Equal(other Hash) bool {
	return subtle.ConstantTimeCompare(h[:], other[:]) == 1
}

// ConstantTimeEqualBytes compares two byte slices of equal length without
// leaking timing information about the position of the first mismatch. A
// length mismatch is rejected immediately and is not itself timing-safe:
// the running time shows whether the two lengths differ.
func ConstantTimeEqualBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
