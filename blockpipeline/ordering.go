package blockpipeline

import (
	"sort"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
)

// Deserialize computes the canonical transaction ordering. With
// explicitOrder supplied (reorg replay), the result matches that exact
// txid sequence. Otherwise, when orderTxs is set, transactions are sorted
// by the deterministic priority function: protocol before generic, stable
// by original index within each bucket; with orderTxs unset they keep the
// order SetRawTransactions received.
func (b *Block) Deserialize(orderTxs bool, explicitOrder []types.Hash) error {
	if err := b.requireState(Fresh); err != nil {
		return err
	}
	if err := b.abort.CheckAborted(); err != nil {
		return err
	}

	if explicitOrder != nil {
		ordered, err := b.reorderExplicit(explicitOrder)
		if err != nil {
			return err
		}
		b.transactions = ordered
	} else if orderTxs {
		b.sortByPriority()
	}

	for i, tx := range b.transactions {
		tx.Index = i
	}

	b.generic = nil
	b.protocol = nil
	for _, tx := range b.transactions {
		if tx.IsProtocol() {
			b.protocol = append(b.protocol, tx)
		} else {
			b.generic = append(b.generic, tx)
		}
	}

	b.state = Deserialized
	return nil
}

func (b *Block) sortByPriority() {
	sort.SliceStable(b.transactions, func(i, j int) bool {
		ti, tj := b.transactions[i], b.transactions[j]
		if ti.IsProtocol() != tj.IsProtocol() {
			return ti.IsProtocol() // protocol before generic
		}
		return ti.OriginalIndex < tj.OriginalIndex
	})
}

func (b *Block) reorderExplicit(order []types.Hash) ([]*types.Transaction, error) {
	byTxid := make(map[types.Hash]*types.Transaction, len(b.transactions))
	for _, tx := range b.transactions {
		byTxid[tx.Txid] = tx
	}
	if len(order) != len(b.transactions) {
		return nil, errs.Wrap(errs.KindValidation, "explicit order length mismatch", nil)
	}
	out := make([]*types.Transaction, len(order))
	for i, txid := range order {
		tx, ok := byTxid[txid]
		if !ok {
			return nil, errs.Wrap(errs.KindValidation, "explicit order references unknown txid", nil)
		}
		out[i] = tx
	}
	return out, nil
}
