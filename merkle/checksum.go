package merkle

import "github.com/opnet-network/indexer/types"

// ChecksumLeaves is the fixed, ordered 6-tuple committed by the checksum
// tree: changing any one element changes the root.
type ChecksumLeaves struct {
	PreviousBlockHash      types.Hash
	PreviousBlockChecksum  types.Hash
	CurrentHash            types.Hash
	BaseMerkleRoot         types.Hash
	StorageRoot            types.Hash
	ReceiptRoot            types.Hash
}

func (l ChecksumLeaves) ordered() [6]types.Hash {
	return [6]types.Hash{
		l.PreviousBlockHash,
		l.PreviousBlockChecksum,
		l.CurrentHash,
		l.BaseMerkleRoot,
		l.StorageRoot,
		l.ReceiptRoot,
	}
}

// ChecksumRoot builds the fixed-arity 6-leaf Merkle tree and returns its
// root plus the per-leaf proof paths, in leaf order.
func ChecksumRoot(hashFn HashFunc, leaves ChecksumLeaves) (types.Hash, [][]ProofStep) {
	if hashFn == nil {
		hashFn = DoubleSHA256
	}
	raw := leaves.ordered()
	level := make([]types.Hash, 6)
	for i, l := range raw {
		level[i] = hashFn(l[:])
	}

	proofs := make([][]ProofStep, 6)
	for leafIdx := range raw {
		proofs[leafIdx] = checksumProofFor(hashFn, level, leafIdx)
	}

	cur := append([]types.Hash(nil), level...)
	for len(cur) > 1 {
		next := make([]types.Hash, 0, (len(cur)+1)/2)
		for i := 0; i < len(cur); i += 2 {
			if i+1 < len(cur) {
				next = append(next, hashFn(cur[i][:], cur[i+1][:]))
			} else {
				next = append(next, hashFn(cur[i][:], cur[i][:]))
			}
		}
		cur = next
	}
	return cur[0], proofs
}

func checksumProofFor(hashFn HashFunc, leafLevel []types.Hash, idx int) []ProofStep {
	level := append([]types.Hash(nil), leafLevel...)
	var proof []ProofStep
	for len(level) > 1 {
		pairIdx := idx ^ 1
		var sibling types.Hash
		var siblingIsLeft bool
		if pairIdx < len(level) {
			sibling = level[pairIdx]
			siblingIsLeft = pairIdx < idx
		} else {
			sibling = level[idx]
			siblingIsLeft = false
		}
		proof = append(proof, ProofStep{Sibling: sibling, Left: siblingIsLeft})

		next := make([]types.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashFn(level[i][:], level[i+1][:]))
			} else {
				next = append(next, hashFn(level[i][:], level[i][:]))
			}
		}
		level = next
		idx = idx / 2
	}
	return proof
}
