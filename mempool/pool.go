// Package mempool implements admission of candidate raw transactions,
// forwarding to the base-layer RPC, and bookkeeping for later inclusion.
// There is no sender-nonce ordering here, since raw Bitcoin-shaped
// transactions carry no nonce: admission is the single staged Submit chain
// (activation, sync, size cap, dedup-by-txid, structural parse, then the
// RPC forward).
package mempool

import (
	"bytes"
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/opnet-network/indexer/chainrpc"
	"github.com/opnet-network/indexer/consensus"
	"github.com/opnet-network/indexer/envelope"
	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/storage"
	"github.com/opnet-network/indexer/types"
)

// SubmitResult is submit's response: success flag, optional rejection
// reason, and the transaction id it was evaluated under.
type SubmitResult struct {
	Success bool
	Reason  string
	ID      types.Hash
}

// Pool is the mempool admission port: staged validation plus the two
// background watchers that keep fee/height state current.
type Pool struct {
	view       *consensus.View
	net        *chaincfg.Params
	repo       storage.MempoolRepository
	blocks     storage.Repository
	rpc        chainrpc.Client
	requireSync bool
}

// New builds a Pool. requireSync gates the synchronization check on in
// Submit's admission pipeline when the corresponding safety flag is on.
func New(view *consensus.View, net *chaincfg.Params, repo storage.MempoolRepository, blocks storage.Repository, rpc chainrpc.Client, requireSync bool) *Pool {
	return &Pool{view: view, net: net, repo: repo, blocks: blocks, rpc: rpc, requireSync: requireSync}
}

// Submit runs the six-step admission pipeline.
func (p *Pool) Submit(ctx context.Context, raw []byte, isPSBT bool, txid types.Hash) (SubmitResult, error) {
	// Step 1: consensus must be active.
	if !p.view.IsActive() {
		return rejected("consensus not active at current height"), nil
	}

	// Step 2: synchronization safety check.
	if p.requireSync {
		synced, err := p.rpc.IsSynchronized(ctx)
		if err != nil {
			return SubmitResult{}, errs.Wrap(errs.KindAdmissionRejected, "synchronization check failed", err)
		}
		if !synced {
			return rejected("node not fully synchronized"), nil
		}
	}

	// Step 3: size cap, PSBT vs raw.
	sizeCap := p.view.MaxRawTxSize
	if isPSBT {
		sizeCap = p.view.MaxPSBTSize
	}
	if len(raw) > sizeCap {
		return rejected("transaction exceeds size cap"), nil
	}

	// Step 4: dedup by txid.
	known, err := p.blocks.HasTransaction(ctx, txid)
	if err != nil {
		return SubmitResult{}, errs.Wrap(errs.KindAdmissionRejected, "dedup lookup failed", err)
	}
	if known {
		return rejected("duplicate transaction"), nil
	}
	if existing, ok, err := p.repo.GetEntry(ctx, txid); err == nil && ok && existing != nil {
		return rejected("duplicate transaction"), nil
	}

	// Step 5: non-fatal structural parse, only to extract inputs/outputs
	// for indexing; a parse failure never blocks admission.
	inputs, outputs, isOpNet, priorityFee := parseForIndexing(raw, isPSBT, p.net)

	// Step 6: forward to the base layer.
	hexRaw := rawHex(raw)
	result, err := p.rpc.BroadcastRawTransaction(ctx, hexRaw, isPSBT)
	if err != nil {
		return SubmitResult{}, errs.Wrap(errs.KindAdmissionRejected, "broadcast failed", err)
	}
	if !result.Accepted {
		return rejected(result.Reason), nil
	}

	entry := storage.MempoolEntry{
		ID:              txid,
		RawBytes:        raw,
		PSBT:            isPSBT,
		FirstSeen:       time.Now().Unix(),
		BlockHeightSeen: p.view.BlockHeight(),
		Inputs:          inputs,
		Outputs:         outputs,
		IsOpNet:         isOpNet,
		PriorityFee:     priorityFee,
	}
	if err := p.repo.PutEntry(ctx, entry); err != nil {
		return SubmitResult{}, errs.Wrap(errs.KindStorageError, "failed to record mempool entry", err)
	}
	return SubmitResult{Success: true, ID: txid}, nil
}

func rejected(reason string) SubmitResult { return SubmitResult{Success: false, Reason: reason} }

func rawHex(raw []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(raw)*2)
	for i, b := range raw {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out)
}

// parseForIndexing decodes a raw (non-PSBT) transaction into the
// input/output refs the entry records. PSBT payloads are not a finalized
// on-chain transaction and carry no stable txid-indexed inputs/outputs
// yet, so they are recorded with empty I/O and picked up once mined.
func parseForIndexing(raw []byte, isPSBT bool, net *chaincfg.Params) ([]storage.MempoolInputRef, []storage.MempoolOutputRef, bool, int64) {
	if isPSBT {
		return nil, nil, false, 0
	}
	var msgTx wire.MsgTx
	if err := msgTx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, nil, false, 0
	}
	inputs := make([]storage.MempoolInputRef, len(msgTx.TxIn))
	for i, in := range msgTx.TxIn {
		inputs[i] = storage.MempoolInputRef{
			PrevTxid: types.BytesToHash(in.PreviousOutPoint.Hash[:]),
			OutIndex: in.PreviousOutPoint.Index,
		}
	}
	outputs := make([]storage.MempoolOutputRef, len(msgTx.TxOut))
	isOpNet := len(msgTx.TxIn) > 0 && len(msgTx.TxIn[0].Witness) == 5
	for i, out := range msgTx.TxOut {
		outputs[i] = storage.MempoolOutputRef{
			Index:   uint32(i),
			Value:   out.Value,
			Address: addressFromScript(out.PkScript, net),
			Script:  out.PkScript,
		}
	}

	var priorityFee int64
	if isOpNet {
		priorityFee = priorityFeeFromWitness(msgTx.TxIn[0].Witness)
	}
	return inputs, outputs, isOpNet, priorityFee
}

// addressFromScript decodes a pkScript's encoded address for indexing.
// An unrecognized or non-standard script yields an empty address rather
// than blocking admission on it.
func addressFromScript(pkScript []byte, net *chaincfg.Params) string {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, net)
	if err != nil || len(addrs) == 0 {
		return ""
	}
	return addrs[0].EncodeAddress()
}

// priorityFeeFromWitness best-effort re-runs the envelope's structural
// parse far enough to recover the declared priority fee. It never fails
// admission: any parse error here simply leaves the fee at zero, since
// full envelope validation (and the fee it is checked against) happens
// again for real once the transaction is mined.
func priorityFeeFromWitness(witness [][]byte) int64 {
	_, decoded, err := envelope.ParseWitness(witness)
	if err != nil {
		return 0
	}
	_, _, res, err := envelope.Classify(decoded)
	if err != nil {
		return 0
	}
	features, err := envelope.ParseFeatures(res["features"])
	if err != nil {
		return 0
	}
	return features.PriorityFeeSat
}
