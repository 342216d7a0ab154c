package blockpipeline

import (
	"context"
	"sync"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/merkle"
	"github.com/opnet-network/indexer/types"
	"github.com/opnet-network/indexer/vmfacade"
)

// Execute runs every transaction: protocol transactions
// sequentially through vm to preserve gas/state-dependency ordering,
// generic-transaction persistence fired off in parallel and joined at
// Finalize. Returns false (without error) when the block was aborted
// mid-execution; the caller must then call RevertBlock.
func (b *Block) Execute(ctx context.Context, vm vmfacade.VM) (bool, error) {
	if err := b.requireState(Deserialized); err != nil {
		return false, err
	}

	b.storageTree = merkle.NewSparseTree(nil)
	b.receiptTree = merkle.NewSparseTree(nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, tx := range b.generic {
			if err := b.repo.SaveTransaction(ctx, tx); err != nil {
				mu.Lock()
				b.genericSaveErrs = append(b.genericSaveErrs, err)
				mu.Unlock()
				b.abort.Abort("generic transaction save failed")
				return
			}
		}
	}()
	b.genericWG = &wg

	var gasUsed int64
	outOfGasFrom := -1
	for i, tx := range b.protocol {
		if err := b.abort.CheckAborted(); err != nil {
			b.joinGeneric()
			b.state = Reverted
			return false, nil
		}

		if gasUsed > b.view.MaxTheoreticalGas {
			outOfGasFrom = i
			break
		}

		eval, err := vm.Execute(ctx, vmfacade.CallContext{
			BlockHash:   b.header.Hash,
			Height:      b.header.Height,
			MedianTime:  b.header.MedianTime,
			PrevBaseGas: b.prevBaseGasForExecution(),
			Transaction: tx,
		})
		if err != nil {
			gasUsed += b.view.PanicGasCost
			tx.Revert = []byte(err.Error())
			b.updateFromEvaluation(tx, nil, true)
			continue
		}

		b.updateFromEvaluation(tx, eval, false)
		gasUsed += int64(eval.GasUsed)
	}

	// BlockOutOfGas policy: remaining transactions are skipped, not
	// re-attempted, and the block is still signed with the receipts
	// accumulated so far plus a skip marker for each one left untouched.
	if outOfGasFrom >= 0 {
		b.outOfGas = true
		skipErr := errs.Wrap(errs.KindBlockOutOfGas, "accumulated gas exceeds MaxTheoreticalGas", nil)
		for _, tx := range b.protocol[outOfGasFrom:] {
			tx.Revert = []byte(skipErr.Error())
			b.updateFromEvaluation(tx, nil, true)
		}
	}

	b.gasUsed = gasUsed
	b.state = Executed
	return true, nil
}

// OutOfGas reports whether Execute stopped early because accumulated gas
// exceeded MaxTheoreticalGas; the block is still signable with the
// partial receipt set Execute produced.
func (b *Block) OutOfGas() bool { return b.outOfGas }

func (b *Block) prevBaseGasForExecution() int64 {
	if b.computed != nil {
		return b.computed.BaseGas
	}
	return b.view.PrevBaseGasDefault()
}

func (b *Block) joinGeneric() {
	if b.genericWG != nil {
		b.genericWG.Wait()
	}
}

// updateFromEvaluation folds one transaction's VM evaluation into the
// trees: on a non-panicking return it pushes writes/receipts into the trees; on a
// panic it is invoked with a nil evaluation and forceStorageCheckDisabled,
// so the storage tree sees the transaction as absent and the receipt tree
// records only a panic-marker leaf for it.
func (b *Block) updateFromEvaluation(tx *types.Transaction, eval *vmfacade.Evaluation, forceStorageCheckDisabled bool) {
	if eval == nil {
		receipt := &types.Receipt{RevertBytes: tx.Revert}
		tx.Receipt = receipt
		b.receiptTree.Insert(contractKeyOf(tx), tx.Txid, merkle.DoubleSHA256([]byte("panic"), tx.Txid[:]))
		return
	}

	receipt := &types.Receipt{
		GasUsed:           eval.GasUsed,
		SpecialGasUsed:    eval.SpecialGasUsed,
		ResultBytes:       eval.ResultBytes,
		RevertBytes:       eval.RevertBytes,
		StorageWrites:     eval.StorageWrites,
		AccessList:        eval.AccessList,
		LoadedStorage:     eval.LoadedStorage,
	}
	for contract, events := range eval.Events {
		receipt.Events = append(receipt.Events, events...)
		_ = contract
	}
	if len(eval.RevertBytes) == 0 {
		receipt.DeployedContracts = eval.DeployedContracts
	}
	tx.Receipt = receipt
	if len(eval.RevertBytes) > 0 {
		tx.Revert = eval.RevertBytes
	}

	if !forceStorageCheckDisabled {
		for _, w := range eval.StorageWrites {
			b.storageTree.Insert(w.Contract, w.Slot, w.Value)
		}
	}
	receiptHash := merkle.DoubleSHA256(tx.Txid[:], eval.ResultBytes, eval.RevertBytes)
	b.receiptTree.Insert(contractKeyOf(tx), tx.Txid, receiptHash)
}

func contractKeyOf(tx *types.Transaction) types.ContractAddress {
	if tx.Type == types.Deployment {
		return types.ContractAddress(tx.From.Bytes())
	}
	return tx.ContractAddress
}
