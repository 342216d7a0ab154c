package types

// Header carries the base-layer block fields the pipeline consumes as
// input, independent of anything OP_NET computes during execution.
type Header struct {
	Height          uint64
	Hash            Hash
	PreviousHash    Hash
	MerkleRoot      Hash // base-layer tx merkle root ("base_merkle_root")
	Time            uint32
	MedianTime      uint32
	Bits            uint32
	Nonce           uint32
	Version         int32
	Size            uint32
	StrippedSize    uint32
	Weight          uint32
	TxCount         uint32
}

// ChecksumProof is one Merkle proof path element for the 6-leaf checksum
// tree, read bottom-up: Sibling is the neighbouring hash and Left reports
// whether it sits on the left.
type ChecksumProof struct {
	Sibling Hash
	Left    bool
}

// Computed holds the fields that only exist once a block has executed
// without fault. Kept as a separate, nil-able struct on Block so the
// "computed fields present only after a successful execute" invariant is
// a nil check rather than a set of sentinel zero values.
type Computed struct {
	StorageRoot            Hash
	ReceiptRoot            Hash
	ChecksumRoot            Hash
	ChecksumProofs          []ChecksumProof
	PreviousBlockChecksum   Hash
	EMA                     int64
	BaseGas                 int64
	GasUsed                 int64
}

// Block is the owned aggregate for one base-layer block: a header, its
// classified transactions (by flat index, not pointer cycles) and, once
// execution succeeds, the Computed commitments. On revert Computed stays
// nil and nothing here is persisted.
type Block struct {
	Header       Header
	Transactions []*Transaction
	Computed     *Computed
}

func NewBlock(h Header) *Block {
	return &Block{Header: h}
}

func (b *Block) IsExecuted() bool { return b.Computed != nil }

// StrippedUTXOs returns the outputs of every generic transaction, the
// "optional UTXO" projection the pipeline exposes to callers that want a
// stripped-down base-layer view without decoding protocol envelopes.
func (b *Block) StrippedUTXOs() []Output {
	var out []Output
	for _, tx := range b.Transactions {
		if tx.Type == Generic {
			out = append(out, tx.Outputs...)
		}
	}
	return out
}

func (b *Block) TxidList() []Hash {
	ids := make([]Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		ids[i] = tx.Txid
	}
	return ids
}
