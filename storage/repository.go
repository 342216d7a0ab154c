// Package storage defines the persistence port the block pipeline and
// mempool write through, plus a pebble-backed implementation. The
// Mongo-style repository implementations used in production live outside
// this binary; this port stands in for them so the pipeline's commitments
// have somewhere real to land.
package storage

import (
	"context"

	"github.com/opnet-network/indexer/types"
)

// Repository is the storage port consumed by blockpipeline and mempool.
type Repository interface {
	// SaveBlock persists a finalized block's header and commitments.
	SaveBlock(ctx context.Context, block *types.Block) error
	// SaveTransaction persists one classified transaction (generic or
	// protocol) belonging to a finalized block.
	SaveTransaction(ctx context.Context, tx *types.Transaction) error

	// PreviousChecksum fetches the checksum of the block at height-1;
	// callers must treat "not found" as DataCorrupted.
	PreviousChecksum(ctx context.Context, height uint64) (types.Hash, bool, error)
	// PreviousHeader fetches the previous block's gas state, used as the
	// gas predictor's (prev_ema, prev_base_gas) input.
	PreviousHeader(ctx context.Context, height uint64) (*types.Header, *types.Computed, bool, error)

	// RevertToHeight drops the header and computed records of every block
	// above height (height+1 and up), supporting one-block reorg replay on
	// top of the in-flight abort/revert path. Transaction records are not
	// removed.
	RevertToHeight(ctx context.Context, height uint64) error

	// HasTransaction reports whether txid is already recorded, used by the
	// mempool's dedup check.
	HasTransaction(ctx context.Context, txid types.Hash) (bool, error)
}

// MempoolRepository is the storage port for mempool entries specifically,
// kept distinct from Repository since it has its own purge/iteration
// needs the block pipeline never uses.
type MempoolRepository interface {
	PutEntry(ctx context.Context, entry MempoolEntry) error
	GetEntry(ctx context.Context, txid types.Hash) (*MempoolEntry, bool, error)
	DeleteEntry(ctx context.Context, txid types.Hash) error
	// PurgeOlderThan drops entries first seen at or before height, used by
	// the block-height watcher's expiration purge.
	PurgeOlderThan(ctx context.Context, height uint64) (int, error)
}

// MempoolEntry is the persisted mempool-entry tuple. There is no
// TheoreticalGasLimit here: gas accounting only exists once a transaction is
// executed inside a block, and mempool admission never runs the VM.
type MempoolEntry struct {
	ID              types.Hash
	RawBytes        []byte
	PSBT            bool
	FirstSeen       int64
	BlockHeightSeen uint64
	Inputs          []MempoolInputRef
	Outputs         []MempoolOutputRef
	PriorityFee     int64
	IsOpNet         bool
}

type MempoolInputRef struct {
	PrevTxid types.Hash
	OutIndex uint32
}

type MempoolOutputRef struct {
	Index   uint32
	Value   int64
	Address string
	Script  []byte
}
