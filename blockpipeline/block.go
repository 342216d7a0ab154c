package blockpipeline

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/opnet-network/indexer/consensus"
	"github.com/opnet-network/indexer/envelope"
	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/merkle"
	"github.com/opnet-network/indexer/storage"
	"github.com/opnet-network/indexer/types"
)

// RawTx is one transaction as seen in the base-layer block, before
// classification.
type RawTx struct {
	Txid          types.Hash
	OriginalIndex int
	Inputs        []types.Input
	Outputs       []types.Output
	Raw           []byte
}

// Block drives one base-layer block through its lifecycle. It owns its
// transactions by value in a flat slice: the block owns the transactions,
// each transaction only ever refers back by index, never by pointer cycle.
type Block struct {
	view    *consensus.View
	network *chaincfg.Params
	abort   *AbortHandle
	repo    storage.Repository

	allowedPreimages    [][]byte
	processAllAsGeneric bool

	header       types.Header
	transactions []*types.Transaction
	state        State

	storageTree *merkle.SparseTree
	receiptTree *merkle.SparseTree
	computed    *types.Computed

	generic  []*types.Transaction
	protocol []*types.Transaction

	genericSaveErrs []error
	genericWG       *sync.WaitGroup
	gasUsed         int64
	reverted        bool
	outOfGas        bool
}

// New builds a fresh block pipeline instance bound to header.
func New(header types.Header, abort *AbortHandle, network *chaincfg.Params, view *consensus.View, repo storage.Repository, allowedPreimages [][]byte, processAllAsGeneric bool) *Block {
	return &Block{
		view:                view,
		network:             network,
		abort:               abort,
		repo:                repo,
		header:              header,
		allowedPreimages:    allowedPreimages,
		processAllAsGeneric: processAllAsGeneric,
		state:               Fresh,
	}
}

func (b *Block) State() State { return b.state }

func (b *Block) requireState(want State) error {
	if b.state != want {
		return errs.Wrap(errs.KindValidation, "block already processed past this step", nil)
	}
	return nil
}

// SetRawTransactions classifies every raw transaction (Generic, Deployment,
// Interaction) via the envelope parser. Idempotent within one instance:
// a second call fails with AlreadyProcessed.
func (b *Block) SetRawTransactions(raw []RawTx) error {
	if b.state != Fresh || b.transactions != nil {
		return errs.Wrap(errs.KindValidation, "AlreadyProcessed", nil)
	}
	txs := make([]*types.Transaction, len(raw))
	for i, r := range raw {
		tx := &types.Transaction{
			Txid:          r.Txid,
			BlockHeight:   b.header.Height,
			BlockHash:     b.header.Hash,
			OriginalIndex: r.OriginalIndex,
			Inputs:        r.Inputs,
			Outputs:       r.Outputs,
			Raw:           r.Raw,
			Type:          types.Generic,
		}
		if !b.processAllAsGeneric {
			envelope.Extract(b.view, b.network, tx)
		}
		txs[i] = tx
	}
	b.transactions = txs
	return nil
}

// HeaderDoc returns the header as it stands; computed fields are only
// present once Computed is non-nil.
func (b *Block) HeaderDoc() types.Header { return b.header }

func (b *Block) Computed() *types.Computed { return b.computed }

func (b *Block) TxidList() []types.Hash {
	ids := make([]types.Hash, len(b.transactions))
	for i, tx := range b.transactions {
		ids[i] = tx.Txid
	}
	return ids
}

func (b *Block) StrippedUTXOs() []types.Output {
	var out []types.Output
	for _, tx := range b.transactions {
		if tx.Type == types.Generic {
			out = append(out, tx.Outputs...)
		}
	}
	return out
}
