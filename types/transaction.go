package types

// TxType tags the dynamic classification of a base-layer transaction.
// A tagged sum rather than an interface: classification never needs
// runtime reflection, only a switch over this value.
type TxType uint8

const (
	Generic TxType = iota
	Deployment
	Interaction
)

func (t TxType) String() string {
	switch t {
	case Generic:
		return "generic"
	case Deployment:
		return "deployment"
	case Interaction:
		return "interaction"
	default:
		return "unknown"
	}
}

// Input is a base-layer transaction input. PrevTxid is the zero hash for a
// coinbase input.
type Input struct {
	PrevTxid Hash
	OutIndex uint32
	Witness  [][]byte
}

func (i Input) IsCoinbase() bool { return i.PrevTxid.IsZero() }

// Output is a base-layer transaction output.
type Output struct {
	Index   uint32
	Value   int64 // satoshis
	Address string
	Script  []byte
}

// ContractInfo describes a contract created by a Deployment transaction.
type ContractInfo struct {
	Address  ContractAddress
	Bytecode []byte
	Owner    XOnlyPubKey32
}

// Transaction is the owned record for a single base-layer transaction once
// classified. Index and OriginalIndex are positions in the owning block's
// flat transaction array rather than pointers, per the cyclic-reference
// design: the block owns its transactions and each transaction refers back
// to its block only by BlockHeight and BlockHash.
type Transaction struct {
	Txid           Hash
	Hash           Hash
	BlockHeight    uint64
	BlockHash      Hash
	Index          int // sort order assigned by the pipeline
	OriginalIndex  int // position as seen in the base-layer block
	Inputs         []Input
	Outputs        []Output
	Raw            []byte
	Type           TxType

	// Populated only for Deployment/Interaction.
	From            XOnlyPubKey32
	FromLegacy      CompressedPubKey33
	Bytecode        []byte          // Deployment only
	ContractAddress ContractAddress // Interaction only
	Calldata        []byte
	Preimage        []byte
	Miner           CompressedPubKey33
	PriorityFeeSat  int64
	GasSatFee       int64
	BurnedFee       int64
	Reward          uint64

	Receipt *Receipt
	Revert  []byte

	// ClassificationError records why envelope classification demoted this
	// transaction to Generic; never surfaced to external callers.
	ClassificationError error
}

func (tx *Transaction) IsProtocol() bool {
	return tx.Type == Deployment || tx.Type == Interaction
}

func (tx *Transaction) MarkReverted(reason []byte) {
	tx.Revert = reason
}
