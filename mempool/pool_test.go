package mempool

import (
	"context"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/opnet-network/indexer/chainrpc"
	"github.com/opnet-network/indexer/consensus"
	"github.com/opnet-network/indexer/storage"
	"github.com/opnet-network/indexer/types"
)

type fakeRPC struct {
	accept      bool
	reason      string
	synced      bool
	height      uint64
	feeRate     int64
	broadcastErr error
}

func (r *fakeRPC) BroadcastRawTransaction(ctx context.Context, rawHex string, isPSBT bool) (chainrpc.BroadcastResult, error) {
	if r.broadcastErr != nil {
		return chainrpc.BroadcastResult{}, r.broadcastErr
	}
	return chainrpc.BroadcastResult{Accepted: r.accept, Reason: r.reason}, nil
}

func (r *fakeRPC) CurrentHeight(ctx context.Context) (uint64, error) { return r.height, nil }
func (r *fakeRPC) IsSynchronized(ctx context.Context) (bool, error)  { return r.synced, nil }
func (r *fakeRPC) EstimateFeeRate(ctx context.Context, confTarget int) (int64, error) {
	return r.feeRate, nil
}

type fakeMempoolRepo struct {
	entries map[types.Hash]storage.MempoolEntry
}

func newFakeMempoolRepo() *fakeMempoolRepo {
	return &fakeMempoolRepo{entries: make(map[types.Hash]storage.MempoolEntry)}
}

func (r *fakeMempoolRepo) PutEntry(ctx context.Context, entry storage.MempoolEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeMempoolRepo) GetEntry(ctx context.Context, txid types.Hash) (*storage.MempoolEntry, bool, error) {
	e, ok := r.entries[txid]
	if !ok {
		return nil, false, nil
	}
	return &e, true, nil
}

func (r *fakeMempoolRepo) DeleteEntry(ctx context.Context, txid types.Hash) error {
	delete(r.entries, txid)
	return nil
}

func (r *fakeMempoolRepo) PurgeOlderThan(ctx context.Context, height uint64) (int, error) {
	purged := 0
	for id, e := range r.entries {
		if e.BlockHeightSeen <= height {
			delete(r.entries, id)
			purged++
		}
	}
	return purged, nil
}

type fakeBlockRepo struct {
	known map[types.Hash]bool
}

func (r *fakeBlockRepo) SaveBlock(ctx context.Context, block *types.Block) error { return nil }
func (r *fakeBlockRepo) SaveTransaction(ctx context.Context, tx *types.Transaction) error {
	return nil
}
func (r *fakeBlockRepo) PreviousChecksum(ctx context.Context, height uint64) (types.Hash, bool, error) {
	return types.Hash{}, false, nil
}
func (r *fakeBlockRepo) PreviousHeader(ctx context.Context, height uint64) (*types.Header, *types.Computed, bool, error) {
	return nil, nil, false, nil
}
func (r *fakeBlockRepo) RevertToHeight(ctx context.Context, height uint64) error { return nil }
func (r *fakeBlockRepo) HasTransaction(ctx context.Context, txid types.Hash) (bool, error) {
	return r.known[txid], nil
}

func TestSubmitRejectsWhenConsensusInactive(t *testing.T) {
	view := consensus.DefaultMainnet()
	view.SetActive(false)
	pool := New(view, &chaincfg.RegressionNetParams, newFakeMempoolRepo(), &fakeBlockRepo{known: map[types.Hash]bool{}}, &fakeRPC{accept: true}, false)

	res, err := pool.Submit(context.Background(), []byte{1, 2, 3}, false, types.BytesToHash([]byte{1}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success {
		t.Fatalf("expected rejection while consensus inactive")
	}
}

func TestSubmitRejectsDuplicateKnownTransaction(t *testing.T) {
	view := consensus.DefaultMainnet()
	txid := types.BytesToHash([]byte{7})
	pool := New(view, &chaincfg.RegressionNetParams, newFakeMempoolRepo(), &fakeBlockRepo{known: map[types.Hash]bool{txid: true}}, &fakeRPC{accept: true}, false)

	res, err := pool.Submit(context.Background(), []byte{1, 2, 3}, false, txid)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success {
		t.Fatalf("expected rejection for known duplicate txid")
	}
}

func TestSubmitRejectsOversizedRaw(t *testing.T) {
	view := consensus.DefaultMainnet()
	view.MaxRawTxSize = 4
	pool := New(view, &chaincfg.RegressionNetParams, newFakeMempoolRepo(), &fakeBlockRepo{known: map[types.Hash]bool{}}, &fakeRPC{accept: true}, false)

	res, err := pool.Submit(context.Background(), []byte{1, 2, 3, 4, 5}, false, types.BytesToHash([]byte{2}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success {
		t.Fatalf("expected rejection for oversized raw tx")
	}
}

func TestSubmitForwardsAndRecordsOnAcceptance(t *testing.T) {
	view := consensus.DefaultMainnet()
	repo := newFakeMempoolRepo()
	txid := types.BytesToHash([]byte{3})
	pool := New(view, &chaincfg.RegressionNetParams, repo, &fakeBlockRepo{known: map[types.Hash]bool{}}, &fakeRPC{accept: true}, false)

	res, err := pool.Submit(context.Background(), []byte{0xde, 0xad, 0xbe, 0xef}, false, txid)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected acceptance, got reason %q", res.Reason)
	}
	if _, ok := repo.entries[txid]; !ok {
		t.Fatalf("expected entry recorded after acceptance")
	}
}

func TestSubmitReturnsRPCRejectionReasonVerbatim(t *testing.T) {
	view := consensus.DefaultMainnet()
	pool := New(view, &chaincfg.RegressionNetParams, newFakeMempoolRepo(), &fakeBlockRepo{known: map[types.Hash]bool{}}, &fakeRPC{accept: false, reason: "insufficient fee"}, false)

	res, err := pool.Submit(context.Background(), []byte{1, 2, 3}, false, types.BytesToHash([]byte{4}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success || res.Reason != "insufficient fee" {
		t.Fatalf("expected verbatim RPC rejection reason, got %+v", res)
	}
}

func TestHeightWatcherPurgesExpiredEntries(t *testing.T) {
	view := consensus.DefaultMainnet()
	view.ExpirationBlocks = 10
	repo := newFakeMempoolRepo()
	old := types.BytesToHash([]byte{5})
	repo.entries[old] = storage.MempoolEntry{ID: old, BlockHeightSeen: 1}
	rpc := &fakeRPC{height: 20}
	pool := New(view, &chaincfg.RegressionNetParams, repo, &fakeBlockRepo{known: map[types.Hash]bool{}}, rpc, false)

	w := NewHeightWatcher(pool, 0)
	w.tick(context.Background())

	if _, ok := repo.entries[old]; ok {
		t.Fatalf("expected expired entry purged")
	}
	if view.BlockHeight() != 20 {
		t.Fatalf("expected view height updated to 20, got %d", view.BlockHeight())
	}
}
