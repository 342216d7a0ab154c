// Package vmfacade defines the pipeline's contract with the VM: it treats
// contract execution as a black box behind this interface and only ever
// consumes its observable inputs/outputs, never bytecode semantics.
package vmfacade

import (
	"context"

	"github.com/opnet-network/indexer/types"
)

// CallContext is everything the VM façade is given for one transaction.
type CallContext struct {
	BlockHash    types.Hash
	Height       uint64
	MedianTime   uint32
	PrevBaseGas  int64
	Transaction  *types.Transaction
	IsSimulation bool
}

// Evaluation is the VM's report back to the pipeline for one transaction.
type Evaluation struct {
	GasUsed           uint64
	SpecialGasUsed    uint64
	ResultBytes       []byte
	Events            map[types.ContractAddress][]types.Event
	DeployedContracts []types.ContractInfo
	RevertBytes       []byte
	StorageWrites     []types.StorageWrite
	AccessList        []types.AccessEntry
	LoadedStorage     []types.AccessEntry
	TransactionID     *types.Hash
}

// VM is the façade contract. Implementations are out of scope here: only
// the call shape and the Evaluation it must return are specified.
type VM interface {
	Execute(ctx context.Context, call CallContext) (*Evaluation, error)

	// DropBlockState is invoked by revert_block to discard any state the
	// VM staged for a block that will never be finalized.
	DropBlockState(ctx context.Context, blockHash types.Hash) error
}

// Panicked reports whether err represents a VM panic (as opposed to an
// ordinary revert, which is communicated via Evaluation.RevertBytes with a
// nil error).
func Panicked(err error) bool { return err != nil }
