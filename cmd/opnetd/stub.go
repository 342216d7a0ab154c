package main

import (
	"context"

	"github.com/opnet-network/indexer/chainrpc"
	"github.com/opnet-network/indexer/types"
	"github.com/opnet-network/indexer/vmfacade"
)

// The base-layer RPC/thread-bus client and the contract VM's internals are
// both external collaborators owned by other services: opnetd
// depends on them only through the chainrpc.Client and vmfacade.VM ports.
// What follows are development stand-ins so the daemon can start without
// those processes present; a production deployment replaces both with the
// real bitcoind-RPC client and VM worker before wiring them into
// mempool.New / blockpipeline.New.

// devRPC is a chainrpc.Client that always reports synced, accepts every
// broadcast and returns static estimates. It exists only to let opnetd
// start standalone; it performs no I/O against a real base layer.
type devRPC struct{ height uint64 }

func (d *devRPC) BroadcastRawTransaction(ctx context.Context, rawHex string, isPSBT bool) (chainrpc.BroadcastResult, error) {
	return chainrpc.BroadcastResult{Accepted: true}, nil
}

func (d *devRPC) CurrentHeight(ctx context.Context) (uint64, error) { return d.height, nil }

func (d *devRPC) IsSynchronized(ctx context.Context) (bool, error) { return true, nil }

func (d *devRPC) EstimateFeeRate(ctx context.Context, confTarget int) (int64, error) {
	return 2, nil
}

// devVM is a vmfacade.VM that executes nothing and reports zero gas. It
// stands in for the real deterministic VM worker, which is owned by
// another service and reached only through its inputs/outputs.
type devVM struct{}

func (d *devVM) Execute(ctx context.Context, call vmfacade.CallContext) (*vmfacade.Evaluation, error) {
	return &vmfacade.Evaluation{}, nil
}

func (d *devVM) DropBlockState(ctx context.Context, blockHash types.Hash) error { return nil }
