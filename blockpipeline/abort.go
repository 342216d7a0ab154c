// Package blockpipeline orders transactions, drives
// envelope/taproot classification and VM execution per transaction,
// accumulates gas, builds the block's commitments, signs it, and persists
// everything through the storage port.
package blockpipeline

import (
	"sync/atomic"

	"github.com/opnet-network/indexer/errs"
)

// AbortHandle is consulted at every suspension point inside a block's
// execution: sticky once set, never reused after a block is reverted.
type AbortHandle struct {
	reason  atomic.Value // string
	aborted atomic.Bool
}

func NewAbortHandle() *AbortHandle { return &AbortHandle{} }

// Abort sets the handle; subsequent CheckAborted calls fail with
// BlockAborted carrying reason.
func (a *AbortHandle) Abort(reason string) {
	a.reason.Store(reason)
	a.aborted.Store(true)
}

func (a *AbortHandle) IsAborted() bool { return a.aborted.Load() }

func (a *AbortHandle) Reason() string {
	if v, ok := a.reason.Load().(string); ok {
		return v
	}
	return ""
}

// CheckAborted is called at every yield point: it returns BlockAborted
// once Abort has been called.
func (a *AbortHandle) CheckAborted() error {
	if a.aborted.Load() {
		return errs.Wrap(errs.KindBlockAborted, a.Reason(), nil)
	}
	return nil
}
