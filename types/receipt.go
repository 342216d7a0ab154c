package types

// Event is a single contract-emitted log entry.
type Event struct {
	ContractAddress ContractAddress
	TypeName        string
	Data            []byte
}

// StorageWrite is one (contract, slot) -> value mutation reported by the VM.
type StorageWrite struct {
	Contract ContractAddress
	Slot     Hash
	Value    Hash
}

// AccessEntry records a single storage slot touched (read or written)
// during execution of one transaction, grounded on the access-list shape
// used for parallel-scheduling hints.
type AccessEntry struct {
	Contract ContractAddress
	Slot     Hash
}

// Receipt is the per-transaction execution outcome produced by the VM
// façade and committed into the receipt Merkle tree.
type Receipt struct {
	GasUsed           uint64
	SpecialGasUsed    uint64
	ResultBytes       []byte
	Events            []Event
	DeployedContracts []ContractInfo
	RevertBytes       []byte
	StorageWrites     []StorageWrite
	AccessList        []AccessEntry
	LoadedStorage     []AccessEntry
}

// Succeeded reports whether the receipt represents a non-reverted
// execution. Invariant: RevertBytes present implies DeployedContracts empty.
func (r *Receipt) Succeeded() bool { return len(r.RevertBytes) == 0 }
