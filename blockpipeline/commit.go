package blockpipeline

import (
	"context"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/gaspred"
	"github.com/opnet-network/indexer/merkle"
	"github.com/opnet-network/indexer/types"
)

// SignBlock computes the block's commitments: storage and
// receipt roots from the two sparse trees (ZERO_HASH for an empty block),
// the next base gas via the gas predictor, and the 6-leaf checksum tree
// over block linkage fields. Fetching the previous block's checksum is
// fatal (DataCorrupted) if missing, since the checksum chain cannot skip
// a link.
func (b *Block) SignBlock(ctx context.Context) error {
	if err := b.requireState(Executed); err != nil {
		return err
	}
	if err := b.abort.CheckAborted(); err != nil {
		b.state = Reverted
		return nil
	}

	storageRoot := types.ZeroHash
	receiptRoot := types.ZeroHash
	if b.receiptTree.Size() > 0 {
		storageRoot = b.storageTree.Root()
		receiptRoot = b.receiptTree.Root()
	}

	prevChecksum, ok, err := b.repo.PreviousChecksum(ctx, b.header.Height)
	if err != nil {
		return errs.Wrap(errs.KindStorageError, "failed to fetch previous checksum", err)
	}
	if !ok && b.header.Height > 0 {
		return errs.Wrap(errs.KindDataCorrupted, "missing previous block checksum", nil)
	}

	_, prevComputed, _, err := b.repo.PreviousHeader(ctx, b.header.Height)
	if err != nil {
		return errs.Wrap(errs.KindStorageError, "failed to fetch previous header", err)
	}
	prevEMA := int64(0)
	prevBaseGas := b.view.PrevBaseGasDefault()
	if prevComputed != nil {
		prevEMA = prevComputed.EMA
		prevBaseGas = prevComputed.BaseGas
	}
	gasState := gaspred.Next(b.view, prevEMA, prevBaseGas, b.gasUsed)

	checksumLeaves := merkle.ChecksumLeaves{
		PreviousBlockHash:     b.header.PreviousHash,
		PreviousBlockChecksum: prevChecksum,
		CurrentHash:           b.header.Hash,
		BaseMerkleRoot:        b.header.MerkleRoot,
		StorageRoot:           storageRoot,
		ReceiptRoot:           receiptRoot,
	}
	checksumRoot, proofSteps := merkle.ChecksumRoot(nil, checksumLeaves)

	proofs := make([]types.ChecksumProof, 0, len(proofSteps))
	for _, steps := range proofSteps {
		for _, s := range steps {
			proofs = append(proofs, types.ChecksumProof{Sibling: s.Sibling, Left: s.Left})
		}
	}

	b.computed = &types.Computed{
		StorageRoot:           storageRoot,
		ReceiptRoot:           receiptRoot,
		ChecksumRoot:          checksumRoot,
		ChecksumProofs:        proofs,
		PreviousBlockChecksum: prevChecksum,
		EMA:                   gasState.EMANext,
		BaseGas:               gasState.BaseGasNext,
		GasUsed:               b.gasUsed,
	}
	b.state = Signed
	return nil
}
