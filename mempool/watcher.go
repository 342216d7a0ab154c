package mempool

import (
	"context"
	"sync/atomic"
	"time"
)

// FeeEstimateTimer re-fetches the base layer's fee estimate on interval
// and clamps it to the consensus view's minimal PSBT acceptance fee rate.
// The latest clamped estimate is exposed via CurrentFeeRate for callers
// building PSBTs.
type FeeEstimateTimer struct {
	pool     *Pool
	interval time.Duration
	confTarget int
	rate     atomic.Int64
}

func NewFeeEstimateTimer(pool *Pool, interval time.Duration, confTarget int) *FeeEstimateTimer {
	return &FeeEstimateTimer{pool: pool, interval: interval, confTarget: confTarget}
}

func (f *FeeEstimateTimer) CurrentFeeRate() int64 { return f.rate.Load() }

// Run blocks until ctx is cancelled, refreshing the estimate each tick.
func (f *FeeEstimateTimer) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	f.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.refresh(ctx)
		}
	}
}

func (f *FeeEstimateTimer) refresh(ctx context.Context) {
	rate, err := f.pool.rpc.EstimateFeeRate(ctx, f.confTarget)
	if err != nil {
		return
	}
	if rate < f.pool.view.MinimalPSBTAcceptanceFeeVBPerSat {
		rate = f.pool.view.MinimalPSBTAcceptanceFeeVBPerSat
	}
	f.rate.Store(rate)
}

// HeightWatcher drives consensus.View.SetBlockHeight from the base layer's
// current height and purges mempool entries older than ExpirationBlocks.
type HeightWatcher struct {
	pool     *Pool
	interval time.Duration
}

func NewHeightWatcher(pool *Pool, interval time.Duration) *HeightWatcher {
	return &HeightWatcher{pool: pool, interval: interval}
}

func (w *HeightWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *HeightWatcher) tick(ctx context.Context) {
	height, err := w.pool.rpc.CurrentHeight(ctx)
	if err != nil {
		return
	}
	w.pool.view.SetBlockHeight(height)
	if height <= w.pool.view.ExpirationBlocks {
		return
	}
	_, _ = w.pool.repo.PurgeOlderThan(ctx, height-w.pool.view.ExpirationBlocks)
}
