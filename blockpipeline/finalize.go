package blockpipeline

import (
	"context"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
	"github.com/opnet-network/indexer/vmfacade"
)

// Finalize persists every transaction and the signed block, joining the
// in-flight generic-transaction save goroutine first so a crash between
// join and block save can never leave the block recorded without its
// generic transactions.
func (b *Block) Finalize(ctx context.Context) error {
	if err := b.requireState(Signed); err != nil {
		return err
	}
	b.joinGeneric()
	if len(b.genericSaveErrs) > 0 {
		return errs.Wrap(errs.KindStorageError, "generic transaction save failed", b.genericSaveErrs[0])
	}

	for _, tx := range b.protocol {
		if err := b.repo.SaveTransaction(ctx, tx); err != nil {
			return errs.Wrap(errs.KindStorageError, "failed to save protocol transaction", err)
		}
	}

	block := &types.Block{
		Header:       b.header,
		Transactions: b.transactions,
		Computed:     b.computed,
	}
	if err := b.repo.SaveBlock(ctx, block); err != nil {
		return errs.Wrap(errs.KindStorageError, "failed to save block", err)
	}

	b.state = Finalized
	return nil
}

// RevertBlock unwinds an in-flight block: it waits for any generic save
// already started, then asks the VM to drop whatever state it accumulated
// for this block hash before marking the instance Reverted. It is safe to
// call from any non-terminal state, and once on a block that an abort
// inside Execute or SignBlock already moved to Reverted.
func (b *Block) RevertBlock(ctx context.Context, vm vmfacade.VM) error {
	if b.state == Finalized || b.reverted {
		return errs.Wrap(errs.KindValidation, "cannot revert a terminal block", nil)
	}
	b.joinGeneric()
	if err := vm.DropBlockState(ctx, b.header.Hash); err != nil {
		return errs.Wrap(errs.KindStorageError, "failed to drop VM block state", err)
	}
	b.reverted = true
	b.state = Reverted
	return nil
}
