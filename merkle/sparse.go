package merkle

import (
	"bytes"
	"sort"

	"github.com/opnet-network/indexer/types"
)

// LeafKey addresses one sparse-tree leaf: (contract_address, slot or txid).
type LeafKey struct {
	Contract types.ContractAddress
	Key      types.Hash
}

// ProofStep is one sibling hash on the path from a leaf to the root.
type ProofStep struct {
	Sibling types.Hash
	Left    bool // true if Sibling is the left child at this level
}

// SparseTree accumulates (contract,key)->value leaves for one block and,
// on Root()/Proofs(), builds a deterministic binary Merkle tree over them.
// A fixed-depth SMT with real sparse (non-existence) proofs is handled by
// a separate solver outside this package; this is the simpler "commit to
// whatever was actually written this block" tree the pipeline's
// storage/receipt commitments need.
type SparseTree struct {
	hashFn HashFunc
	leaves map[LeafKey]types.Hash
}

func NewSparseTree(hashFn HashFunc) *SparseTree {
	if hashFn == nil {
		hashFn = DoubleSHA256
	}
	return &SparseTree{hashFn: hashFn, leaves: make(map[LeafKey]types.Hash)}
}

// Insert records the hashed value for (contract,key), overwriting any
// prior value within the same block.
func (t *SparseTree) Insert(contract types.ContractAddress, key types.Hash, value types.Hash) {
	t.leaves[LeafKey{Contract: contract, Key: key}] = value
}

func (t *SparseTree) Size() int { return len(t.leaves) }

// sortedKeys returns leaf keys in a canonical, insertion-order-independent
// sequence so Root() is reproducible across identical inputs regardless of
// call order: a single re-run on identical inputs must yield a
// byte-identical root.
func (t *SparseTree) sortedKeys() []LeafKey {
	keys := make([]LeafKey, 0, len(t.leaves))
	for k := range t.leaves {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Contract != keys[j].Contract {
			return keys[i].Contract < keys[j].Contract
		}
		return bytes.Compare(keys[i].Key[:], keys[j].Key[:]) < 0
	})
	return keys
}

func (t *SparseTree) leafHash(k LeafKey) types.Hash {
	v := t.leaves[k]
	return t.hashFn([]byte(k.Contract), k.Key[:], v[:])
}

// Root returns ZeroHash for an empty tree: empty blocks commit to a
// canonical zero hash rather than an arbitrary empty-tree root.
func (t *SparseTree) Root() types.Hash {
	if len(t.leaves) == 0 {
		return types.ZeroHash
	}
	keys := t.sortedKeys()
	level := make([]types.Hash, len(keys))
	for i, k := range keys {
		level[i] = t.leafHash(k)
	}
	return t.reduceToRoot(level)
}

func (t *SparseTree) reduceToRoot(level []types.Hash) types.Hash {
	for len(level) > 1 {
		next := make([]types.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, t.hashFn(level[i][:], level[i+1][:]))
			} else {
				// Odd node out: duplicate, matching the base chain's own
				// Merkle convention for an unpaired final leaf.
				next = append(next, t.hashFn(level[i][:], level[i][:]))
			}
		}
		level = next
	}
	return level[0]
}

// Proof returns the sibling path for (contract,key) from leaf to root.
func (t *SparseTree) Proof(contract types.ContractAddress, key types.Hash) ([]ProofStep, bool) {
	lk := LeafKey{Contract: contract, Key: key}
	if _, ok := t.leaves[lk]; !ok {
		return nil, false
	}
	keys := t.sortedKeys()
	idx := -1
	for i, k := range keys {
		if k == lk {
			idx = i
			break
		}
	}
	level := make([]types.Hash, len(keys))
	for i, k := range keys {
		level[i] = t.leafHash(k)
	}

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
				next = append(next, t.hashFn(level[i][:], level[i+1][:]))
			} else {
				next = append(next, t.hashFn(level[i][:], level[i][:]))
			}
		}
		level = next
		idx = idx / 2
	}
	return proof, true
}

// VerifyProof recomputes a leaf's path given a proof and checks it
// reproduces root.
func VerifyProof(hashFn HashFunc, leaf types.Hash, proof []ProofStep, root types.Hash) bool {
	if hashFn == nil {
		hashFn = DoubleSHA256
	}
	cur := leaf
	for _, step := range proof {
		if step.Left {
			cur = hashFn(step.Sibling[:], cur[:])
		} else {
			cur = hashFn(cur[:], step.Sibling[:])
		}
	}
	return cur.Equal(root)
}
